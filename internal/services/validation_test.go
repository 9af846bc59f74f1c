package services

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bnbBack/internal/models"
)

func TestValidateApartmentMessages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.ApartmentInput)
		message string
	}{
		{"missing title", func(in *models.ApartmentInput) { in.Title = "" }, `"title" is required`},
		{"zero rooms", func(in *models.ApartmentInput) { in.Rooms = 0 }, `"rooms" must be greater than or equal to 1`},
		{"small area", func(in *models.ApartmentInput) { in.SquareMeters = 0.5 }, `"square_meters" must be greater than or equal to 1`},
		{"missing address", func(in *models.ApartmentInput) { in.Address = "" }, `"address" is required`},
		{"short city", func(in *models.ApartmentInput) { in.City = "R" }, `"city" length must be at least 2 characters long`},
		{"long title", func(in *models.ApartmentInput) { in.Title = strings.Repeat("a", 256) }, `"title" length must be less than or equal to 255 characters long`},
		{"huge rooms", func(in *models.ApartmentInput) { in.Rooms = 1 << 32 }, `"rooms" must be less than or equal to 4294967295`},
		{"huge area", func(in *models.ApartmentInput) { in.SquareMeters = 1e10 }, `"square_meters" must be less than or equal to 9999999999.99`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validApartmentInput()
			tt.mutate(&in)

			err := ValidateApartment(in)

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Message)
		})
	}

	assert.NoError(t, ValidateApartment(validApartmentInput()))
}

func TestValidateReviewUpperBounds(t *testing.T) {
	in := models.ReviewInput{Username: strings.Repeat("u", 101), Email: "a@b.co", Review: "Nice stay", Days: 2}

	err := ValidateReview(in)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, `"username" length must be less than or equal to 100 characters long`, verr.Message)

	in.Username = "alice"
	in.Days = 1 << 32
	err = ValidateReview(in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, `"days" must be less than or equal to 4294967295`, verr.Message)

	in.Days = 4294967295
	assert.NoError(t, ValidateReview(in))
}

func TestUniqueServiceIDs(t *testing.T) {
	got := uniqueServiceIDs([]int{3, 1, 3, 1})
	if !reflect.DeepEqual(got, []int{3, 1}) {
		t.Errorf("uniqueServiceIDs = %v, want [3 1]", got)
	}
	if got := uniqueServiceIDs(nil); len(got) != 0 {
		t.Errorf("uniqueServiceIDs(nil) = %v, want empty", got)
	}
}

func TestMissingServiceIDs(t *testing.T) {
	got := missingServiceIDs([]int{9, 1, 4}, []int{1})
	if !reflect.DeepEqual(got, []int{4, 9}) {
		t.Errorf("missingServiceIDs = %v, want [4 9]", got)
	}
	if got := missingServiceIDs([]int{1}, []int{1}); got != nil {
		t.Errorf("missingServiceIDs = %v, want nil", got)
	}
}
