package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/course-advisor/internal/domain"
	"github.com/fairyhunter13/course-advisor/internal/usecase"
)

func TestValidateProfile_Age(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		age        string
		wantStatus string
		wantErrSub string
		wantWarn   string
	}{
		{name: "under 12 blocks", age: "10", wantStatus: domain.ValidationError, wantErrSub: "minimum age"},
		{name: "12 to 14 blocks degrees", age: "13", wantStatus: domain.ValidationError, wantErrSub: "too young for degree"},
		{name: "15 to 17 warns", age: "16", wantStatus: domain.ValidationOK, wantWarn: "Most degree programs require completed A/Ls"},
		{name: "adult passes", age: "21", wantStatus: domain.ValidationOK},
		{name: "unparseable age treated as missing", age: "twenty", wantStatus: domain.ValidationOK},
		{name: "empty age treated as missing", age: "", wantStatus: domain.ValidationOK},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := domain.UserProfile{Age: tt.age, ALResults: "3 passes"}
			got := usecase.ValidateProfile(p, nil)
			assert.Equal(t, tt.wantStatus, got.Status)
			if tt.wantErrSub != "" {
				require.NotEmpty(t, got.Errors)
				assert.Contains(t, got.Errors[0], tt.wantErrSub)
			}
			if tt.wantWarn != "" {
				require.NotEmpty(t, got.Warnings)
				assert.Contains(t, got.Warnings[0], tt.wantWarn)
			}
		})
	}
}

func TestValidateProfile_MissingALWarnsAdultsOnly(t *testing.T) {
	t.Parallel()

	adult := usecase.ValidateProfile(domain.UserProfile{Age: "20"}, nil)
	require.Equal(t, domain.ValidationOK, adult.Status)
	require.Len(t, adult.Warnings, 1)
	assert.Contains(t, adult.Warnings[0], "did not provide A/L results")

	withAL := usecase.ValidateProfile(domain.UserProfile{Age: "20", ALResults: "ABB"}, nil)
	assert.Empty(t, withAL.Warnings)
}

func TestValidateProfile_Location(t *testing.T) {
	t.Parallel()
	known := []string{"Colombo, Kandy", "Galle"}

	t.Run("known location passes", func(t *testing.T) {
		t.Parallel()
		got := usecase.ValidateProfile(domain.UserProfile{PreferredLocations: "colombo"}, known)
		assert.Equal(t, domain.ValidationOK, got.Status)
	})

	t.Run("unknown location blocks with samples", func(t *testing.T) {
		t.Parallel()
		got := usecase.ValidateProfile(domain.UserProfile{PreferredLocations: "atlantis"}, known)
		require.Equal(t, domain.ValidationError, got.Status)
		require.Len(t, got.Errors, 1)
		assert.Contains(t, got.Errors[0], "atlantis")
		assert.Contains(t, got.Errors[0], "Available locations include")
		assert.Contains(t, got.Errors[0], "Colombo")
	})

	t.Run("one match among several preferences passes", func(t *testing.T) {
		t.Parallel()
		got := usecase.ValidateProfile(domain.UserProfile{PreferredLocations: "atlantis, galle"}, known)
		assert.Equal(t, domain.ValidationOK, got.Status)
	})

	t.Run("no known locations skips the check", func(t *testing.T) {
		t.Parallel()
		got := usecase.ValidateProfile(domain.UserProfile{PreferredLocations: "atlantis"}, nil)
		assert.Equal(t, domain.ValidationOK, got.Status)
	})

	t.Run("n/a preference skips the check", func(t *testing.T) {
		t.Parallel()
		got := usecase.ValidateProfile(domain.UserProfile{PreferredLocations: "N/A"}, known)
		assert.Equal(t, domain.ValidationOK, got.Status)
	})
}

func TestValidateProfile_ShortDurationWarns(t *testing.T) {
	t.Parallel()
	for _, period := range []string{"1 year", "One Year", "under 1 year", "1"} {
		got := usecase.ValidateProfile(domain.UserProfile{Age: "20", ALResults: "ABB", CompletionPeriod: period}, nil)
		require.Equal(t, domain.ValidationOK, got.Status, period)
		require.Len(t, got.Warnings, 1, period)
		assert.Contains(t, got.Warnings[0], "diploma, top-up, or certificate", period)
	}

	got := usecase.ValidateProfile(domain.UserProfile{Age: "20", ALResults: "ABB", CompletionPeriod: "4 years"}, nil)
	assert.Empty(t, got.Warnings)
}
