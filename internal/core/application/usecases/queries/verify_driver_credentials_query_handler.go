package queries

import (
	"context"
	"net/http"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	fnVerifyDriverCredentials = "verifyDriverCredentials"

	// MsgInvalidCredentials does not say which half was wrong.
	MsgInvalidCredentials = "Invalid email or password."
)

// VerifyDriverCredentialsQueryHandler looks the driver up by email and checks the
// password against the stored hash. An unknown email and a wrong password are
// the same 401 refusal.
type VerifyDriverCredentialsQueryHandler struct {
	db     *gorm.DB
	hasher ports.PasswordHasher
}

func NewVerifyDriverCredentialsQueryHandler(db *gorm.DB, hasher ports.PasswordHasher) VerifyDriverCredentialsQueryHandler {
	return VerifyDriverCredentialsQueryHandler{db: db, hasher: hasher}
}

func (h VerifyDriverCredentialsQueryHandler) Handle(
	ctx context.Context,
	query VerifyDriverCredentialsQuery,
) (_ *VerifyDriverCredentialsQueryResponse, err error) {
	defer errs.Recover(fnVerifyDriverCredentials, &err)

	res, err := h.handle(ctx, query)
	if err != nil {
		return nil, errs.AsFailure(fnVerifyDriverCredentials, err)
	}
	return res, nil
}

func (h VerifyDriverCredentialsQueryHandler) handle(
	ctx context.Context,
	query VerifyDriverCredentialsQuery,
) (*VerifyDriverCredentialsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	refusal := errs.NewRefusalErrorWithStatus(fnVerifyDriverCredentials, MsgInvalidCredentials, http.StatusUnauthorized)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			password_hash,
			status,
			email_confirmed
		FROM drivers
		WHERE email = ?
	`, query.Email()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, refusal
	}

	var (
		id     uuid.UUID
		hash   string
		status string
		res    VerifyDriverCredentialsQueryResponse
	)
	if err = rows.Scan(&id, &hash, &status, &res.EmailConfirmed); err != nil {
		return nil, err
	}

	ok, err := h.hasher.Verify(query.Password(), hash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, refusal
	}

	if res.DriverID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	res.Status = driver.Status(status)

	return &res, nil
}
