package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/isaacrobert33/outreach-logistics/config"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildPaymentFilter_Unfiltered(t *testing.T) {
	filter := buildPaymentFilter("*", "*", "*", "*", "*")
	if len(filter) != 1 {
		t.Fatalf("expected only the soft-delete clause, got %v", filter)
	}
	if _, ok := filter["is_deleted"]; !ok {
		t.Error("soft-deleted rows must always be excluded")
	}
	if _, ok := filter["$or"]; ok {
		t.Error("free-text OR clause must be omitted when q is unset")
	}
}

func TestBuildPaymentFilter_FreeText(t *testing.T) {
	filter := buildPaymentFilter("jane", "*", "*", "*", "*")
	or, ok := filter["$or"].([]bson.M)
	if !ok {
		t.Fatalf("expected $or clause, got %v", filter)
	}
	if len(or) != 2 {
		t.Fatalf("free text should match name OR email, got %d clauses", len(or))
	}
}

func TestBuildPaymentFilter_Dimensions(t *testing.T) {
	oid := primitive.NewObjectID()
	bid := primitive.NewObjectID()

	filter := buildPaymentFilter("*", "PAID", oid.Hex(), bid.Hex(), "FEMALE")
	if filter["payment_status"] != "PAID" {
		t.Errorf("status filter missing: %v", filter)
	}
	if filter["outreach_id"] != oid {
		t.Errorf("outreach filter missing: %v", filter)
	}
	if filter["bank_id"] != bid {
		t.Errorf("bank filter missing: %v", filter)
	}
	if filter["gender"] != "FEMALE" {
		t.Errorf("gender filter missing: %v", filter)
	}
}

func TestBuildPaymentFilter_InvalidIDsIgnored(t *testing.T) {
	filter := buildPaymentFilter("*", "*", "not-a-hex-id", "also-bad", "*")
	if _, ok := filter["outreach_id"]; ok {
		t.Error("unparsable outreach id should not constrain the filter")
	}
	if _, ok := filter["bank_id"]; ok {
		t.Error("unparsable bank id should not constrain the filter")
	}
}

func TestValidatePaymentInput(t *testing.T) {
	cases := []struct {
		name   string
		input  paymentInput
		wantOK bool
	}{
		{"empty input is fine", paymentInput{}, true},
		{"minimum amount", paymentInput{PaidAmount: floatPtr(500)}, true},
		{"below minimum", paymentInput{PaidAmount: floatPtr(499)}, false},
		{"bad gender", paymentInput{Gender: "OTHER"}, false},
		{"good gender", paymentInput{Gender: "MALE"}, true},
		{"bad status", paymentInput{PaymentStatus: "REFUNDED"}, false},
		{"good status", paymentInput{PaymentStatus: "PARTIAL"}, true},
		{"short phone", paymentInput{Phone: "080111"}, false},
		{"full phone", paymentInput{Phone: "08011112222"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := validatePaymentInput(&tc.input)
			if tc.wantOK && msg != "" {
				t.Errorf("expected valid, got %q", msg)
			}
			if !tc.wantOK && msg == "" {
				t.Error("expected a validation message")
			}
		})
	}
}

func TestNewPaymentFromInput_Defaults(t *testing.T) {
	now := time.Now()
	p := newPaymentFromInput(&paymentInput{Name: "Jane Doe", Phone: "08011112222"}, primitive.NilObjectID, primitive.NilObjectID, now)

	if p.PaymentStatus != "NOT_PAID" {
		t.Errorf("status should default to NOT_PAID, got %q", p.PaymentStatus)
	}
	if p.Gender != "UNSPECIFIED" {
		t.Errorf("gender should default to UNSPECIFIED, got %q", p.Gender)
	}
	if p.Unit != "President" {
		t.Errorf("unit should default to President, got %q", p.Unit)
	}
	if p.PendingAmount != 0 {
		t.Errorf("pending amount should start at 0, got %v", p.PendingAmount)
	}
	if p.ProofImages == nil {
		t.Error("proof image list should be initialized")
	}
	if !p.CreatedAt.Equal(now) || !p.UpdatedAt.Equal(now) {
		t.Error("timestamps should be set from now")
	}
}

func TestNewPaymentFromInput_SuppliedValuesKept(t *testing.T) {
	in := paymentInput{
		Gender:        "FEMALE",
		Unit:          "Choir",
		PaymentStatus: "PENDING",
		PaidAmount:    floatPtr(750),
		PendingAmount: floatPtr(250),
	}
	p := newPaymentFromInput(&in, primitive.NilObjectID, primitive.NilObjectID, time.Now())

	if p.PaymentStatus != "PENDING" || p.Gender != "FEMALE" || p.Unit != "Choir" {
		t.Errorf("supplied fields were overridden: %+v", p)
	}
	if p.PaidAmount != 750 || p.PendingAmount != 250 {
		t.Errorf("amounts not carried: paid=%v pending=%v", p.PaidAmount, p.PendingAmount)
	}
}

func TestBuildPaymentPatch_PendingTopUpAccumulates(t *testing.T) {
	update, ok := buildPaymentPatch(&paymentInput{PendingAmount: floatPtr(250)}, time.Now())
	if !ok {
		t.Fatal("a pendingAmount patch must count as a change")
	}

	inc, found := update["$inc"].(bson.M)
	if !found {
		t.Fatalf("expected $inc clause, got %v", update)
	}
	if inc["pending_amount"] != 250.0 {
		t.Errorf("$inc pending_amount = %v, want 250", inc["pending_amount"])
	}

	set := update["$set"].(bson.M)
	if set["payment_status"] != "PENDING" {
		t.Errorf("a top-up must force status PENDING, got %v", set["payment_status"])
	}
	if _, replaced := set["pending_amount"]; replaced {
		t.Error("pending amount must be incremented, never replaced")
	}
}

func TestBuildPaymentPatch_PendingOverridesSuppliedStatus(t *testing.T) {
	in := paymentInput{PaymentStatus: "PAID", PendingAmount: floatPtr(100)}
	update, _ := buildPaymentPatch(&in, time.Now())

	set := update["$set"].(bson.M)
	if set["payment_status"] != "PENDING" {
		t.Errorf("status = %v, want PENDING to win over the supplied value", set["payment_status"])
	}
}

func TestBuildPaymentPatch_MergesOnlySupplied(t *testing.T) {
	update, ok := buildPaymentPatch(&paymentInput{Name: "Jane Doe"}, time.Now())
	if !ok {
		t.Fatal("expected a change")
	}

	set := update["$set"].(bson.M)
	if set["name"] != "Jane Doe" {
		t.Errorf("name not carried: %v", set)
	}
	if _, found := set["email"]; found {
		t.Error("unsupplied fields must not be touched")
	}
	if _, found := update["$inc"]; found {
		t.Error("no $inc without a pendingAmount")
	}
}

func TestBuildPaymentPatch_EmptyInput(t *testing.T) {
	if _, ok := buildPaymentPatch(&paymentInput{}, time.Now()); ok {
		t.Error("an empty patch must report no changes")
	}
}

func TestDuplicateContactFilter(t *testing.T) {
	if _, ok := duplicateContactFilter("", ""); ok {
		t.Error("no contact info should mean no duplicate check")
	}

	filter, ok := duplicateContactFilter("jane@example.com", "")
	if !ok {
		t.Fatal("email alone must trigger the check")
	}
	if or := filter["$or"].([]bson.M); len(or) != 1 {
		t.Errorf("expected 1 clause for email only, got %d", len(or))
	}
	if _, found := filter["is_deleted"]; !found {
		t.Error("soft-deleted payments must not block re-registration")
	}

	filter, _ = duplicateContactFilter("jane@example.com", "08011112222")
	if or := filter["$or"].([]bson.M); len(or) != 2 {
		t.Errorf("expected 2 clauses for email and phone, got %d", len(or))
	}

	if duplicateContactMessage != "Email or Phone number already exists." {
		t.Errorf("rejection message drifted: %q", duplicateContactMessage)
	}
}

// Create's validation runs before any database access.
func TestCreatePayment_RejectsLowAmount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/payments", CreatePayment(&config.Config{}))

	body := bytes.NewBufferString(`{"name":"Jane Doe","phone":"08011112222","paidAmount":400}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPaymentExportRow_ColumnSet(t *testing.T) {
	if len(paymentExportHeaders) != 8 {
		t.Fatalf("export has %d columns, want 8", len(paymentExportHeaders))
	}

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := newPaymentFromInput(&paymentInput{
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "08011112222",
		Crew:       "Kitchen",
		PaidAmount: floatPtr(500),
	}, primitive.NilObjectID, primitive.NilObjectID, created)
	p.ID = "KIT/001"

	row := paymentExportRow(p)
	if len(row) != len(paymentExportHeaders) {
		t.Fatalf("row has %d cells, header has %d", len(row), len(paymentExportHeaders))
	}
	if row[0] != "KIT/001" || row[1] != "Jane Doe" || row[4] != "Kitchen" {
		t.Errorf("unexpected row contents: %v", row)
	}
	if row[7] != "2025-06-01T12:00:00Z" {
		t.Errorf("createdAt cell = %v", row[7])
	}
}
