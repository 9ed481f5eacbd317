package utils

import "testing"

func TestNewEnvelope_SuccessDefaults(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{200, "Fetched successfully"},
		{201, "Added successfully"},
		{202, "Updated successfully"},
		{204, "Deleted successfully"},
	}
	for _, tc := range cases {
		e := NewEnvelope(tc.status, "", nil)
		if !e.Success {
			t.Errorf("status %d: expected success=true", tc.status)
		}
		if e.Message != tc.want {
			t.Errorf("status %d: message = %q, want %q", tc.status, e.Message, tc.want)
		}
	}
}

func TestNewEnvelope_ErrorDefaults(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{400, "Validation error"},
		{401, "Invalid Access Token"},
		{403, "Access denied"},
		{404, "Resource not found"},
		{500, "Something went wrong"},
	}
	for _, tc := range cases {
		e := NewEnvelope(tc.status, "", nil)
		if e.Success {
			t.Errorf("status %d: expected success=false", tc.status)
		}
		if e.Message != tc.want {
			t.Errorf("status %d: message = %q, want %q", tc.status, e.Message, tc.want)
		}
	}
}

func TestNewEnvelope_ExplicitMessageWins(t *testing.T) {
	e := NewEnvelope(400, "Email or Phone number already exists.", nil)
	if e.Message != "Email or Phone number already exists." {
		t.Errorf("explicit message was overridden: %q", e.Message)
	}
	if e.Success {
		t.Error("400 with explicit message must still be success=false")
	}

	e = NewEnvelope(200, "File uploaded", nil)
	if e.Message != "File uploaded" || !e.Success {
		t.Errorf("got message=%q success=%v", e.Message, e.Success)
	}
}

func TestNewEnvelope_CarriesData(t *testing.T) {
	data := map[string]string{"id": "KIT/001"}
	e := NewEnvelope(201, "", data)
	if e.Data == nil {
		t.Fatal("expected data to be carried through")
	}
	if e.Status != 201 {
		t.Errorf("status = %d, want 201", e.Status)
	}
}
