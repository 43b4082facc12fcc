package types

import "testing"

func TestValidateUserID(t *testing.T) {
	t.Parallel()

	valid := []string{"anonymous-user", "u1", "User_42", "a"}
	for _, id := range valid {
		if err := ValidateUserID(id); err != nil {
			t.Errorf("ValidateUserID(%q) = %v, want nil", id, err)
		}
	}

	invalid := []string{"", "has space", "semi;colon", "x@y", string(make([]byte, 65))}
	for _, id := range invalid {
		if err := ValidateUserID(id); err == nil {
			t.Errorf("ValidateUserID(%q) = nil, want error", id)
		}
	}
}

func TestValidateEntryID(t *testing.T) {
	t.Parallel()

	if err := ValidateEntryID("3b7e9c1a-61f2-4f6e-9b3d-6f2a1e8c4d50"); err != nil {
		t.Fatalf("valid UUID rejected: %v", err)
	}
	for _, id := range []string{"", "not-a-uuid", "12345"} {
		if err := ValidateEntryID(id); err == nil {
			t.Errorf("ValidateEntryID(%q) = nil, want error", id)
		}
	}
}

func TestValidatePage(t *testing.T) {
	t.Parallel()

	if err := ValidatePage(0, 0); err != nil {
		t.Fatalf("zero values must be allowed: %v", err)
	}
	if err := ValidatePage(3, 100); err != nil {
		t.Fatalf("in-range values rejected: %v", err)
	}
	if err := ValidatePage(-1, 10); err == nil {
		t.Error("negative page accepted")
	}
	if err := ValidatePage(1, 101); err == nil {
		t.Error("oversized page size accepted")
	}
}
