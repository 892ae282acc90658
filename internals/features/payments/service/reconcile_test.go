package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"confhub_backend/internals/features/payments/model"
	regModel "confhub_backend/internals/features/registrations/model"
	spnModel "confhub_backend/internals/features/sponsorships/model"
)

var testSchema = []string{
	`CREATE TABLE payments (
		payment_id TEXT PRIMARY KEY,
		payment_reference TEXT NOT NULL UNIQUE,
		payment_type TEXT NOT NULL,
		payment_tier TEXT NOT NULL,
		payment_amount INTEGER NOT NULL,
		payment_currency TEXT NOT NULL,
		payment_email TEXT NOT NULL,
		payment_name TEXT NOT NULL,
		payment_phone TEXT,
		payment_status TEXT NOT NULL,
		payment_checkout_url TEXT,
		payment_transaction_id TEXT,
		payment_gateway_response TEXT,
		payment_form_data TEXT,
		payment_registration_id TEXT,
		payment_sponsorship_id TEXT,
		payment_completed_at DATETIME,
		payment_failed_at DATETIME,
		payment_created_at DATETIME,
		payment_updated_at DATETIME,
		payment_deleted_at DATETIME
	)`,
	`CREATE TABLE registrations (
		registration_id TEXT PRIMARY KEY,
		registration_full_name TEXT NOT NULL,
		registration_email TEXT NOT NULL,
		registration_phone TEXT,
		registration_organization TEXT,
		registration_country TEXT,
		registration_type TEXT NOT NULL,
		registration_dietary TEXT,
		registration_status TEXT NOT NULL,
		registration_payment_status TEXT NOT NULL,
		registration_payment_reference TEXT,
		registration_created_at DATETIME,
		registration_updated_at DATETIME,
		registration_deleted_at DATETIME
	)`,
	`CREATE TABLE sponsorships (
		sponsorship_id TEXT PRIMARY KEY,
		sponsorship_company_name TEXT NOT NULL,
		sponsorship_contact_person TEXT NOT NULL,
		sponsorship_email TEXT NOT NULL,
		sponsorship_phone TEXT,
		sponsorship_website TEXT,
		sponsorship_package_type TEXT NOT NULL,
		sponsorship_status TEXT NOT NULL,
		sponsorship_payment_status TEXT NOT NULL,
		sponsorship_payment_reference TEXT,
		sponsorship_created_at DATETIME,
		sponsorship_updated_at DATETIME,
		sponsorship_deleted_at DATETIME
	)`,
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, ddl := range testSchema {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}

func seedPayment(t *testing.T, db *gorm.DB, ref, paymentType, tier string, amount int64, status model.Status) *model.Payment {
	t.Helper()

	var form *model.FormData
	switch paymentType {
	case model.PaymentTypeRegistration:
		form = &model.FormData{
			Type: model.PaymentTypeRegistration,
			Registration: &model.RegistrationForm{
				FullName:         "Amina Okello",
				Email:            "amina@example.com",
				RegistrationType: tier,
			},
		}
	default:
		form = &model.FormData{
			Type: model.PaymentTypeSponsorship,
			Sponsorship: &model.SponsorshipForm{
				CompanyName:   "Acme Ltd",
				ContactPerson: "John Mwangi",
				Email:         "sponsors@acme.example",
				PackageType:   tier,
			},
		}
	}
	formJSON, err := form.ToJSON()
	if err != nil {
		t.Fatalf("form snapshot: %v", err)
	}

	p := &model.Payment{
		PaymentReference: ref,
		PaymentType:      paymentType,
		PaymentTier:      tier,
		PaymentAmount:    amount,
		PaymentCurrency:  "UGX",
		PaymentEmail:     "amina@example.com",
		PaymentName:      "Amina Okello",
		PaymentStatus:    status,
		PaymentFormData:  formJSON,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return p
}

func successful(ref string, amount float64, currency string) *Verification {
	return &Verification{
		Status:        VerificationSuccessful,
		TransactionID: "9001",
		TxRef:         ref,
		Amount:        amount,
		Currency:      currency,
		Raw:           json.RawMessage(`{"status":"successful"}`),
	}
}

func reloadPayment(t *testing.T, db *gorm.DB, ref string) *model.Payment {
	t.Helper()
	var p model.Payment
	if err := db.First(&p, "payment_reference = ?", ref).Error; err != nil {
		t.Fatalf("reload payment: %v", err)
	}
	return &p
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestReconcileSuccessCreatesRegistration(t *testing.T) {
	db := openTestDB(t)
	rec := NewReconciler(db, zap.NewNop())
	seedPayment(t, db, "REG_1_aa11bb22", model.PaymentTypeRegistration, "local", 350000, model.StatusPending)

	out, err := rec.Reconcile(context.Background(), "REG_1_aa11bb22", successful("REG_1_aa11bb22", 350000, "UGX"))
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !out.Applied || out.Status != model.StatusCompleted || out.EntityID == nil {
		t.Fatalf("outcome = %+v", out)
	}

	p := reloadPayment(t, db, "REG_1_aa11bb22")
	if p.PaymentStatus != model.StatusCompleted || p.PaymentCompletedAt == nil {
		t.Errorf("payment not completed: status=%s completed_at=%v", p.PaymentStatus, p.PaymentCompletedAt)
	}
	if p.PaymentTransactionID == nil || *p.PaymentTransactionID != "9001" {
		t.Errorf("transaction id not recorded: %v", p.PaymentTransactionID)
	}
	if p.PaymentRegistrationID == nil || *p.PaymentRegistrationID != *out.EntityID {
		t.Errorf("payment not linked to registration: %v", p.PaymentRegistrationID)
	}

	if n := countRows(t, db, &regModel.Registration{}); n != 1 {
		t.Fatalf("registrations = %d, want 1", n)
	}
	var r regModel.Registration
	if err := db.First(&r).Error; err != nil {
		t.Fatalf("load registration: %v", err)
	}
	if r.RegistrationStatus != regModel.RegistrationStatusConfirmed {
		t.Errorf("registration status = %q", r.RegistrationStatus)
	}
	if r.RegistrationPaymentReference == nil || *r.RegistrationPaymentReference != "REG_1_aa11bb22" {
		t.Errorf("registration back-link = %v", r.RegistrationPaymentReference)
	}
}

func TestReconcileFailure(t *testing.T) {
	db := openTestDB(t)
	rec := NewReconciler(db, zap.NewNop())
	seedPayment(t, db, "REG_2_cc33dd44", model.PaymentTypeRegistration, "student", 150000, model.StatusPending)

	v := successful("REG_2_cc33dd44", 150000, "UGX")
	v.Status = VerificationFailed

	out, err := rec.Reconcile(context.Background(), "REG_2_cc33dd44", v)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !out.Applied || out.Status != model.StatusFailed {
		t.Fatalf("outcome = %+v", out)
	}

	p := reloadPayment(t, db, "REG_2_cc33dd44")
	if p.PaymentStatus != model.StatusFailed || p.PaymentFailedAt == nil {
		t.Errorf("payment not failed: status=%s failed_at=%v", p.PaymentStatus, p.PaymentFailedAt)
	}
	if n := countRows(t, db, &regModel.Registration{}); n != 0 {
		t.Errorf("failed payment materialized %d registrations", n)
	}
}

func TestReconcilePendingNoOp(t *testing.T) {
	db := openTestDB(t)
	rec := NewReconciler(db, zap.NewNop())
	seedPayment(t, db, "REG_3_ee55ff66", model.PaymentTypeRegistration, "virtual", 100000, model.StatusPending)

	v := successful("REG_3_ee55ff66", 0, "UGX")
	v.Status = VerificationPending

	out, err := rec.Reconcile(context.Background(), "REG_3_ee55ff66", v)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if out.Applied || out.Status != model.StatusPending {
		t.Fatalf("outcome = %+v", out)
	}
	if p := reloadPayment(t, db, "REG_3_ee55ff66"); p.PaymentStatus != model.StatusPending {
		t.Errorf("pending verification moved the payment to %s", p.PaymentStatus)
	}
	if n := countRows(t, db, &regModel.Registration{}); n != 0 {
		t.Errorf("pending verification materialized %d registrations", n)
	}
}

func TestReconcileRepeatedSuccessCreatesOneEntity(t *testing.T) {
	db := openTestDB(t)
	rec := NewReconciler(db, zap.NewNop())
	seedPayment(t, db, "SPN_1_a1b2c3d4", model.PaymentTypeSponsorship, "gold", 12000000, model.StatusPending)

	v := successful("SPN_1_a1b2c3d4", 12000000, "UGX")
	for i := 0; i < 3; i++ {
		out, err := rec.Reconcile(context.Background(), "SPN_1_a1b2c3d4", v)
		if err != nil {
			t.Fatalf("Reconcile #%d: %v", i+1, err)
		}
		if out.Status != model.StatusCompleted {
			t.Fatalf("Reconcile #%d status = %s", i+1, out.Status)
		}
		if (i == 0) != out.Applied {
			t.Errorf("Reconcile #%d applied = %v", i+1, out.Applied)
		}
		if out.EntityID == nil {
			t.Errorf("Reconcile #%d lost the entity id", i+1)
		}
	}

	if n := countRows(t, db, &spnModel.Sponsorship{}); n != 1 {
		t.Fatalf("sponsorships = %d, want exactly 1", n)
	}
}

func TestReconcileUnderpaidChargeHeldForReview(t *testing.T) {
	db := openTestDB(t)
	rec := NewReconciler(db, zap.NewNop())
	seedPayment(t, db, "SPN_2_b2c3d4e5", model.PaymentTypeSponsorship, "platinum", 18000000, model.StatusPending)

	// a 100 UGX charge reported "successful" against an 18,000,000 tier
	out, err := rec.Reconcile(context.Background(), "SPN_2_b2c3d4e5", successful("SPN_2_b2c3d4e5", 100, "UGX"))
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if out.Status != model.StatusPendingManual || !out.Applied {
		t.Fatalf("outcome = %+v, want pending_manual applied", out)
	}
	if n := countRows(t, db, &spnModel.Sponsorship{}); n != 0 {
		t.Fatalf("underpaid charge materialized %d sponsorships", n)
	}
	if p := reloadPayment(t, db, "SPN_2_b2c3d4e5"); p.PaymentStatus != model.StatusPendingManual {
		t.Fatalf("payment status = %s, want pending_manual", p.PaymentStatus)
	}

	// once held, even a full-amount success cannot settle it behind the
	// admin's back
	out, err = rec.Reconcile(context.Background(), "SPN_2_b2c3d4e5", successful("SPN_2_b2c3d4e5", 18000000, "UGX"))
	if err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}
	if out.Applied || out.Status != model.StatusPendingManual {
		t.Errorf("held payment settled by gateway: %+v", out)
	}
	if n := countRows(t, db, &spnModel.Sponsorship{}); n != 0 {
		t.Errorf("held payment materialized %d sponsorships", n)
	}
}

func TestReconcileCurrencySwitchHeldForReview(t *testing.T) {
	db := openTestDB(t)
	rec := NewReconciler(db, zap.NewNop())
	seedPayment(t, db, "REG_4_c3d4e5f6", model.PaymentTypeRegistration, "international", 1100000, model.StatusPending)

	// numerically covering amount, wrong currency
	out, err := rec.Reconcile(context.Background(), "REG_4_c3d4e5f6", successful("REG_4_c3d4e5f6", 1100000, "USD"))
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if out.Status != model.StatusPendingManual {
		t.Fatalf("status = %s, want pending_manual", out.Status)
	}
	if n := countRows(t, db, &regModel.Registration{}); n != 0 {
		t.Errorf("wrong-currency charge materialized %d registrations", n)
	}
}

func TestReconcileOverpaymentSettles(t *testing.T) {
	db := openTestDB(t)
	rec := NewReconciler(db, zap.NewNop())
	seedPayment(t, db, "REG_5_d4e5f6a7", model.PaymentTypeRegistration, "local", 350000, model.StatusPending)

	out, err := rec.Reconcile(context.Background(), "REG_5_d4e5f6a7", successful("REG_5_d4e5f6a7", 400000, "UGX"))
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if out.Status != model.StatusCompleted {
		t.Errorf("overpayment status = %s, want completed", out.Status)
	}
}

func TestReconcileManualRowIgnoresGateway(t *testing.T) {
	db := openTestDB(t)
	rec := NewReconciler(db, zap.NewNop())
	seedPayment(t, db, "SPN_3_e5f6a7b8", model.PaymentTypeSponsorship, "silver", 7500000, model.StatusPendingManual)

	out, err := rec.Reconcile(context.Background(), "SPN_3_e5f6a7b8", successful("SPN_3_e5f6a7b8", 7500000, "UGX"))
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if out.Applied || out.Status != model.StatusPendingManual {
		t.Fatalf("bank-transfer row settled by gateway event: %+v", out)
	}
	if n := countRows(t, db, &spnModel.Sponsorship{}); n != 0 {
		t.Errorf("bank-transfer row materialized %d sponsorships", n)
	}
}

func TestReconcileUnknownReference(t *testing.T) {
	db := openTestDB(t)
	rec := NewReconciler(db, zap.NewNop())

	_, err := rec.Reconcile(context.Background(), "REG_0_00000000", successful("REG_0_00000000", 1, "UGX"))
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("err = %v, want ErrPaymentNotFound", err)
	}
}

func TestReconcileFormTypeMismatchRollsBack(t *testing.T) {
	db := openTestDB(t)
	rec := NewReconciler(db, zap.NewNop())

	// internally consistent registration snapshot stored on a sponsorship row
	form := &model.FormData{
		Type: model.PaymentTypeRegistration,
		Registration: &model.RegistrationForm{
			FullName:         "Amina Okello",
			Email:            "amina@example.com",
			RegistrationType: "local",
		},
	}
	formJSON, err := form.ToJSON()
	if err != nil {
		t.Fatalf("form snapshot: %v", err)
	}
	p := &model.Payment{
		PaymentReference: "SPN_4_f6a7b8c9",
		PaymentType:      model.PaymentTypeSponsorship,
		PaymentTier:      "gold",
		PaymentAmount:    12000000,
		PaymentCurrency:  "UGX",
		PaymentEmail:     "amina@example.com",
		PaymentName:      "Amina Okello",
		PaymentStatus:    model.StatusPending,
		PaymentFormData:  formJSON,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	_, err = rec.Reconcile(context.Background(), "SPN_4_f6a7b8c9", successful("SPN_4_f6a7b8c9", 12000000, "UGX"))
	if !errors.Is(err, model.ErrFormDataMismatch) {
		t.Fatalf("err = %v, want ErrFormDataMismatch", err)
	}

	// the whole transaction rolled back: not completed, nothing materialized
	if got := reloadPayment(t, db, "SPN_4_f6a7b8c9"); got.PaymentStatus != model.StatusPending {
		t.Errorf("payment status = %s, want pending after rollback", got.PaymentStatus)
	}
	if n := countRows(t, db, &regModel.Registration{}); n != 0 {
		t.Errorf("mismatched snapshot materialized %d registrations", n)
	}
	if n := countRows(t, db, &spnModel.Sponsorship{}); n != 0 {
		t.Errorf("mismatched snapshot materialized %d sponsorships", n)
	}
}

func TestAdminResolveConfirm(t *testing.T) {
	db := openTestDB(t)
	rec := NewReconciler(db, zap.NewNop())
	seedPayment(t, db, "SPN_5_a7b8c9d0", model.PaymentTypeSponsorship, "bronze", 4000000, model.StatusPendingManual)

	out, err := rec.AdminResolve(context.Background(), "SPN_5_a7b8c9d0", true)
	if err != nil {
		t.Fatalf("AdminResolve: %v", err)
	}
	if !out.Applied || out.Status != model.StatusCompleted || out.EntityID == nil {
		t.Fatalf("outcome = %+v", out)
	}
	if n := countRows(t, db, &spnModel.Sponsorship{}); n != 1 {
		t.Fatalf("sponsorships = %d, want 1", n)
	}

	// resolving again observes the settled state and adds nothing
	out, err = rec.AdminResolve(context.Background(), "SPN_5_a7b8c9d0", true)
	if err != nil {
		t.Fatalf("second AdminResolve: %v", err)
	}
	if out.Applied || out.Status != model.StatusCompleted {
		t.Errorf("second resolve = %+v", out)
	}
	if n := countRows(t, db, &spnModel.Sponsorship{}); n != 1 {
		t.Errorf("second resolve left %d sponsorships", n)
	}
}

func TestAdminResolveReject(t *testing.T) {
	db := openTestDB(t)
	rec := NewReconciler(db, zap.NewNop())
	seedPayment(t, db, "REG_6_b8c9d0e1", model.PaymentTypeRegistration, "local", 350000, model.StatusPendingManual)

	out, err := rec.AdminResolve(context.Background(), "REG_6_b8c9d0e1", false)
	if err != nil {
		t.Fatalf("AdminResolve: %v", err)
	}
	if !out.Applied || out.Status != model.StatusFailed {
		t.Fatalf("outcome = %+v", out)
	}
	if p := reloadPayment(t, db, "REG_6_b8c9d0e1"); p.PaymentFailedAt == nil {
		t.Error("failed_at not recorded")
	}
	if n := countRows(t, db, &regModel.Registration{}); n != 0 {
		t.Errorf("rejected payment materialized %d registrations", n)
	}
}

func TestAdminResolveOnGatewayRow(t *testing.T) {
	db := openTestDB(t)
	rec := NewReconciler(db, zap.NewNop())
	seedPayment(t, db, "REG_7_c9d0e1f2", model.PaymentTypeRegistration, "local", 350000, model.StatusPending)

	// admin resolution only targets pending_manual; a live gateway row is
	// left alone
	out, err := rec.AdminResolve(context.Background(), "REG_7_c9d0e1f2", true)
	if err != nil {
		t.Fatalf("AdminResolve: %v", err)
	}
	if out.Applied || out.Status != model.StatusPending {
		t.Fatalf("outcome = %+v, want untouched pending", out)
	}
	if n := countRows(t, db, &regModel.Registration{}); n != 0 {
		t.Errorf("admin resolve on pending row materialized %d registrations", n)
	}
}
