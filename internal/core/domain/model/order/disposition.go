package order

import (
	"fmt"
	"net/http"

	"dispatch/internal/pkg/errs"
)

// Disposition is the lifecycle state of an order.
//
// Legal transitions:
//
//	NEW ──> PAID ──> COMPLETE ──> DELIVERED
//	 │        │         │
//	 │        └─────────┼────────> DELIVERED
//	 └────────┴─────────┴────────> CANCELED
//
// CANCELED is reachable from every state. Whether the graph is enforced is decided
// by a TransitionPolicy.
type Disposition string

const (
	DispositionNew       Disposition = "NEW"
	DispositionPaid      Disposition = "PAID"
	DispositionComplete  Disposition = "COMPLETE"
	DispositionCanceled  Disposition = "CANCELED"
	DispositionDelivered Disposition = "DELIVERED"
)

func transitions() map[Disposition][]Disposition {
	return map[Disposition][]Disposition{
		DispositionNew:       {DispositionPaid, DispositionCanceled},
		DispositionPaid:      {DispositionComplete, DispositionDelivered, DispositionCanceled},
		DispositionComplete:  {DispositionDelivered, DispositionCanceled},
		DispositionDelivered: {DispositionCanceled},
		DispositionCanceled:  {DispositionCanceled},
	}
}

// Validate accepts the five known dispositions.
func (d Disposition) Validate() error {
	if _, ok := transitions()[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("disposition is invalid", fmt.Errorf("%q is not a valid disposition", string(d)))
	}
	return nil
}

func (d Disposition) String() string {
	return string(d)
}

// CanTransitionTo reports whether next is a legal successor of d.
func (d Disposition) CanTransitionTo(next Disposition) bool {
	for _, candidate := range transitions()[d] {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsMutable reports whether items may still be added to or removed from an order in d.
func (d Disposition) IsMutable() bool {
	return d != DispositionDelivered && d != DispositionCanceled
}

// TransitionPolicy decides whether ChangeDisposition enforces the transition graph.
type TransitionPolicy int

const (
	// Permissive accepts any valid target from any source state.
	Permissive TransitionPolicy = iota
	// Strict refuses transitions that are not edges of the graph.
	Strict
)

// Check returns nil when the policy allows moving from one disposition to another.
func (p TransitionPolicy) Check(from, to Disposition) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if p == Strict && !from.CanTransitionTo(to) {
		return errs.NewRefusalErrorWithStatus(
			"changeDisposition",
			fmt.Sprintf("Order cannot move from %s to %s.", from, to),
			http.StatusConflict,
		)
	}
	return nil
}
