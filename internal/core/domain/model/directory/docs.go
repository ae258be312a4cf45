// Package directory contains read models for marketplace records that other
// services own: vendors, customers, addresses and menu items. Dispatch reads
// them to build notification payloads and to price order items; it never
// changes them.
package directory
