package commands

import (
	"context"
	"errors"
	"strings"

	"production/internal/core/domain/model/identifier"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

const (
	minSerialYear = 2000
	maxSerialYear = 2099
)

var ErrAllocateSerialCommandIsNotConstructed = errors.New(
	"AllocateSerialCommand must be created via NewAllocateSerialCommand constructor",
)

// AllocateSerialCommand asks for the next customer serial, e.g. ACM2500002.
type AllocateSerialCommand struct {
	customerCode string
	year         int
	guard        guard.ConstructorGuard
}

func NewAllocateSerialCommand(customerCode string, year int) (AllocateSerialCommand, error) {
	var codeErr, yearErr error

	customerCode = strings.TrimSpace(customerCode)
	if customerCode == "" {
		codeErr = errs.NewValueIsRequiredError("customerCode")
	}
	if year < minSerialYear || year > maxSerialYear {
		yearErr = errs.NewValueIsOutOfRangeError("year", year, minSerialYear, maxSerialYear)
	}

	if err := errors.Join(codeErr, yearErr); err != nil {
		return AllocateSerialCommand{}, err
	}

	return AllocateSerialCommand{
		customerCode: customerCode,
		year:         year,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AllocateSerialCommand) Validate() error {
	return c.guard.Validate(ErrAllocateSerialCommandIsNotConstructed)
}

func (c AllocateSerialCommand) CustomerCode() string {
	return c.customerCode
}

func (c AllocateSerialCommand) Year() int {
	return c.year
}

// AllocateSerialCommandHandler issues customer serials from a per-customer
// sequence row held under lock until commit.
type AllocateSerialCommandHandler struct {
	uowFactory SequenceUoWFactory
}

func NewAllocateSerialCommandHandler(uowFactory SequenceUoWFactory) AllocateSerialCommandHandler {
	return AllocateSerialCommandHandler{uowFactory: uowFactory}
}

func (h AllocateSerialCommandHandler) Handle(ctx context.Context, cmd AllocateSerialCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SequenceRepository()
	state, err := repo.Lock(ctx, identifier.SerialSequenceKey(cmd.CustomerCode()))
	if err != nil {
		return "", err
	}

	serial, sequence := identifier.NextSerial(cmd.CustomerCode(), cmd.Year(), state.LastSequence)
	if err = repo.Save(ctx, state.Issue(serial, &sequence)); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return serial, nil
}
