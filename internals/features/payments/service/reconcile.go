package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"confhub_backend/internals/features/payments/model"
	regModel "confhub_backend/internals/features/registrations/model"
	spnModel "confhub_backend/internals/features/sponsorships/model"
)

/* =========================================================
   Reconciliation

   Webhook, client poll and the sweeper all converge here.
   The completed transition is a compare-and-swap on
   payment_status, and the entity insert happens inside the
   same transaction, so a concurrent duplicate invocation
   claims zero rows and creates nothing.
========================================================= */

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrChargeMismatch  = errors.New("gateway charge does not match payment")
)

type Reconciler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewReconciler(db *gorm.DB, log *zap.Logger) *Reconciler {
	return &Reconciler{db: db, log: log}
}

// Outcome reports the state of the payment after reconciliation.
type Outcome struct {
	Reference string       `json:"reference"`
	Status    model.Status `json:"status"`
	EntityID  *uuid.UUID   `json:"entity_id,omitempty"`
	// Applied is true when this invocation performed the transition (as
	// opposed to observing a state another invocation already reached).
	Applied bool `json:"-"`
}

// Reconcile applies an authoritative gateway verification to the payment row
// identified by reference. Idempotent: re-applying the same result is a
// no-op that reports the settled state.
func (r *Reconciler) Reconcile(ctx context.Context, reference string, v *Verification) (*Outcome, error) {
	var p model.Payment
	if err := r.db.WithContext(ctx).
		First(&p, "payment_reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	switch v.Status {
	case VerificationSuccessful:
		// A "successful" status alone is not enough: hosted checkout charges
		// can be initiated against an arbitrary tx_ref with an arbitrary
		// amount, so the verified charge must cover what we priced.
		if err := chargeCovers(&p, v); err != nil {
			return r.applyMismatch(ctx, &p, v, err)
		}
		return r.applySuccess(ctx, &p, v)
	case VerificationFailed:
		return r.applyFailure(ctx, &p, v)
	default:
		// gateway still pending: no state change
		return &Outcome{Reference: p.PaymentReference, Status: p.PaymentStatus, EntityID: p.LinkedEntityID()}, nil
	}
}

// chargeCovers compares the verified charge against the stored price.
// Overpayment settles; underpayment or a currency switch does not.
func chargeCovers(p *model.Payment, v *Verification) error {
	if v.Currency != p.PaymentCurrency {
		return fmt.Errorf("%w: charged in %s, priced in %s", ErrChargeMismatch, v.Currency, p.PaymentCurrency)
	}
	if v.Amount < float64(p.PaymentAmount) {
		return fmt.Errorf("%w: charged %.0f, priced %d", ErrChargeMismatch, v.Amount, p.PaymentAmount)
	}
	return nil
}

// applyMismatch parks a short-paid or wrong-currency charge as
// pending_manual: never completed, never an entity, held for the admin
// console to refund or settle.
func (r *Reconciler) applyMismatch(ctx context.Context, p *model.Payment, v *Verification, cause error) (*Outcome, error) {
	target, err := model.NextStatus(model.StatusPending, model.EventGatewayMismatch)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("payment_reference = ? AND payment_status = ?", p.PaymentReference, model.StatusPending).
		Updates(map[string]interface{}{
			"payment_status":           target,
			"payment_transaction_id":   nilIfEmpty(v.TransactionID),
			"payment_gateway_response": datatypes.JSON(v.Raw),
		})
	if res.Error != nil {
		return nil, res.Error
	}

	out := &Outcome{Reference: p.PaymentReference, Status: target, Applied: res.RowsAffected > 0}
	if res.RowsAffected == 0 {
		var cur model.Payment
		if err := r.db.WithContext(ctx).
			First(&cur, "payment_reference = ?", p.PaymentReference).Error; err != nil {
			return nil, err
		}
		out.Status = cur.PaymentStatus
		out.EntityID = cur.LinkedEntityID()
		return out, nil
	}

	r.log.Warn("payment held for manual review",
		zap.String("reference", p.PaymentReference),
		zap.String("transaction_id", v.TransactionID),
		zap.Float64("charged", v.Amount),
		zap.Int64("priced", p.PaymentAmount),
		zap.Error(cause))
	return out, nil
}

func (r *Reconciler) applySuccess(ctx context.Context, p *model.Payment, v *Verification) (*Outcome, error) {
	target, err := model.NextStatus(model.StatusPending, model.EventGatewaySuccessful)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Reference: p.PaymentReference}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&model.Payment{}).
			Where("payment_reference = ? AND payment_status = ?", p.PaymentReference, model.StatusPending).
			Updates(map[string]interface{}{
				"payment_status":           target,
				"payment_transaction_id":   nilIfEmpty(v.TransactionID),
				"payment_gateway_response": datatypes.JSON(v.Raw),
				"payment_completed_at":     now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// lost the race, or the row is pending_manual/terminal
			return nil
		}
		out.Applied = true

		form, err := model.ParseFormData(p.PaymentFormData)
		if err != nil {
			return err
		}
		entityID, err := r.materialize(tx, p, form)
		if err != nil {
			return err
		}
		out.EntityID = &entityID

		link := "payment_registration_id"
		if p.PaymentType == model.PaymentTypeSponsorship {
			link = "payment_sponsorship_id"
		}
		return tx.Model(&model.Payment{}).
			Where("payment_reference = ?", p.PaymentReference).
			Update(link, entityID).Error
	})
	if err != nil {
		r.log.Error("reconciliation: completed transition failed",
			zap.String("reference", p.PaymentReference),
			zap.Error(err))
		return nil, err
	}

	if !out.Applied {
		// converge on whatever state the winner left behind
		var cur model.Payment
		if err := r.db.WithContext(ctx).
			First(&cur, "payment_reference = ?", p.PaymentReference).Error; err != nil {
			return nil, err
		}
		out.Status = cur.PaymentStatus
		out.EntityID = cur.LinkedEntityID()
		return out, nil
	}

	out.Status = target
	r.log.Info("payment completed",
		zap.String("reference", p.PaymentReference),
		zap.String("type", p.PaymentType),
		zap.String("transaction_id", v.TransactionID))
	return out, nil
}

func (r *Reconciler) applyFailure(ctx context.Context, p *model.Payment, v *Verification) (*Outcome, error) {
	target, err := model.NextStatus(model.StatusPending, model.EventGatewayFailed)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("payment_reference = ? AND payment_status = ?", p.PaymentReference, model.StatusPending).
		Updates(map[string]interface{}{
			"payment_status":           target,
			"payment_transaction_id":   nilIfEmpty(v.TransactionID),
			"payment_gateway_response": datatypes.JSON(v.Raw),
			"payment_failed_at":        now,
		})
	if res.Error != nil {
		r.log.Error("reconciliation: failed transition not persisted",
			zap.String("reference", p.PaymentReference),
			zap.Error(res.Error))
		return nil, res.Error
	}

	out := &Outcome{Reference: p.PaymentReference, Status: target, Applied: res.RowsAffected > 0}
	if res.RowsAffected == 0 {
		var cur model.Payment
		if err := r.db.WithContext(ctx).
			First(&cur, "payment_reference = ?", p.PaymentReference).Error; err != nil {
			return nil, err
		}
		out.Status = cur.PaymentStatus
		out.EntityID = cur.LinkedEntityID()
	} else {
		r.log.Info("payment failed",
			zap.String("reference", p.PaymentReference),
			zap.String("transaction_id", v.TransactionID))
	}
	return out, nil
}

// AdminResolve settles a pending_manual (bank transfer) payment after the
// admin console has sighted the funds. Runs through the same FSM and the
// same materialization path as gateway reconciliation.
func (r *Reconciler) AdminResolve(ctx context.Context, reference string, confirmed bool) (*Outcome, error) {
	ev := model.EventAdminConfirmed
	if !confirmed {
		ev = model.EventAdminRejected
	}
	target, err := model.NextStatus(model.StatusPendingManual, ev)
	if err != nil {
		return nil, err
	}

	var p model.Payment
	if err := r.db.WithContext(ctx).
		First(&p, "payment_reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	out := &Outcome{Reference: reference}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]interface{}{"payment_status": target}
		if confirmed {
			updates["payment_completed_at"] = now
		} else {
			updates["payment_failed_at"] = now
		}
		res := tx.Model(&model.Payment{}).
			Where("payment_reference = ? AND payment_status = ?", reference, model.StatusPendingManual).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		out.Applied = true

		if !confirmed {
			return nil
		}
		form, err := model.ParseFormData(p.PaymentFormData)
		if err != nil {
			return err
		}
		entityID, err := r.materialize(tx, &p, form)
		if err != nil {
			return err
		}
		out.EntityID = &entityID

		link := "payment_registration_id"
		if p.PaymentType == model.PaymentTypeSponsorship {
			link = "payment_sponsorship_id"
		}
		return tx.Model(&model.Payment{}).
			Where("payment_reference = ?", reference).
			Update(link, entityID).Error
	})
	if err != nil {
		r.log.Error("admin resolution failed",
			zap.String("reference", reference),
			zap.Error(err))
		return nil, err
	}

	if !out.Applied {
		var cur model.Payment
		if err := r.db.WithContext(ctx).
			First(&cur, "payment_reference = ?", reference).Error; err != nil {
			return nil, err
		}
		out.Status = cur.PaymentStatus
		out.EntityID = cur.LinkedEntityID()
		return out, nil
	}
	out.Status = target
	return out, nil
}

// materialize inserts the business entity from the stored form snapshot.
// Called only inside the transaction that claimed the completed transition.
func (r *Reconciler) materialize(tx *gorm.DB, p *model.Payment, form *model.FormData) (uuid.UUID, error) {
	// Check passed at parse time only proves the snapshot is internally
	// consistent, not that it belongs to this row's payment_type.
	if form.Type != p.PaymentType {
		return uuid.Nil, fmt.Errorf("%w: stored %s form on %s payment", model.ErrFormDataMismatch, form.Type, p.PaymentType)
	}

	ref := p.PaymentReference

	switch p.PaymentType {
	case model.PaymentTypeRegistration:
		f := form.Registration
		row := regModel.Registration{
			RegistrationFullName:         f.FullName,
			RegistrationEmail:            f.Email,
			RegistrationPhone:            f.Phone,
			RegistrationOrganization:     f.Organization,
			RegistrationCountry:          f.Country,
			RegistrationType:             f.RegistrationType,
			RegistrationDietary:          f.DietaryRequirements,
			RegistrationStatus:           regModel.RegistrationStatusConfirmed,
			RegistrationPaymentStatus:    string(model.StatusCompleted),
			RegistrationPaymentReference: &ref,
		}
		if err := tx.Create(&row).Error; err != nil {
			return uuid.Nil, err
		}
		return row.RegistrationID, nil

	case model.PaymentTypeSponsorship:
		f := form.Sponsorship
		row := spnModel.Sponsorship{
			SponsorshipCompanyName:      f.CompanyName,
			SponsorshipContactPerson:    f.ContactPerson,
			SponsorshipEmail:            f.Email,
			SponsorshipPhone:            f.Phone,
			SponsorshipWebsite:          f.Website,
			SponsorshipPackageType:      f.PackageType,
			SponsorshipStatus:           spnModel.SponsorshipStatusConfirmed,
			SponsorshipPaymentStatus:    string(model.StatusCompleted),
			SponsorshipPaymentReference: &ref,
		}
		if err := tx.Create(&row).Error; err != nil {
			return uuid.Nil, err
		}
		return row.SponsorshipID, nil
	}

	return uuid.Nil, model.ErrFormDataMismatch
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
