package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/CodeDreamers777/Assettone/internal/service"
	"github.com/CodeDreamers777/Assettone/pkg/logger"
	"github.com/CodeDreamers777/Assettone/prometheus"
)

// RecordRentPayment appends a payment to a lease's ledger
func RecordRentPayment(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	leaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lease id"})
	}

	var req struct {
		Amount        decimal.Decimal `json:"amount"`
		PaymentDate   string          `json:"payment_date"`
		PaymentMethod string          `json:"payment_method"`
		Notes         string          `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		paymentDate, err = parseDate(req.PaymentDate, "payment_date")
		if err != nil {
			return writeError(c, err)
		}
	}

	result, err := svc.RecordPayment(service.RecordPaymentInput{
		LeaseID:       leaseID,
		Amount:        req.Amount,
		PaymentDate:   paymentDate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}, profile)
	if err != nil {
		return writeError(c, err)
	}

	prometheus.PaymentsRecordedCounter.Inc()
	log.Info("Rent payment recorded",
		zap.String("lease_id", leaseID.String()),
		zap.String("payment_id", result.PaymentID.String()),
		zap.String("amount", req.Amount.String()))
	return c.JSON(http.StatusCreated, result)
}

// GetUnitPaymentStatus returns the current billing period snapshot for a unit
func GetUnitPaymentStatus(c echo.Context) error {
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit id"})
	}

	if _, err := svc.GetUnit(unitID, profile); err != nil {
		return writeError(c, err)
	}

	status, err := svc.GetPaymentStatus(unitID)
	if err != nil {
		return writeError(c, err)
	}
	if status == nil {
		return c.JSON(http.StatusOK, echo.Map{"message": "no active lease for this unit"})
	}
	return c.JSON(http.StatusOK, status)
}

// ListLeasePayments returns a lease's full payment history
func ListLeasePayments(c echo.Context) error {
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	leaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lease id"})
	}

	if _, err := svc.GetLease(leaseID, profile); err != nil {
		return writeError(c, err)
	}

	payments, err := svc.PaymentsForLease(leaseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": payments})
}
