package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCheckUserValid(t *testing.T) {
	in := UserInput{Name: "John Doe", Email: "john.doe@example.com", Age: intPtr(30)}
	assert.Nil(t, CheckUser(in))
}

func TestCheckUserReportsAllFieldsTogether(t *testing.T) {
	in := UserInput{Name: "   ", Email: "not-an-email", Age: intPtr(-1)}
	fields := CheckUser(in)
	require.Len(t, fields, 3)
	assert.Equal(t, "Name is required", fields["name"])
	assert.Equal(t, "Email should be valid", fields["email"])
	assert.Equal(t, "Age must be greater than or equal to 0", fields["age"])
}

func TestCheckUserMissingFields(t *testing.T) {
	fields := CheckUser(UserInput{})
	require.Len(t, fields, 3)
	assert.Equal(t, "Name is required", fields["name"])
	assert.Equal(t, "Email is required", fields["email"])
	assert.Equal(t, "Age is required", fields["age"])
}

func TestCheckUserBlankEmailBeatsFormat(t *testing.T) {
	fields := CheckUser(UserInput{Name: "A", Email: "  ", Age: intPtr(1)})
	assert.Equal(t, "Email is required", fields["email"])
}

func TestCheckUserZeroAgeAllowed(t *testing.T) {
	fields := CheckUser(UserInput{Name: "A", Email: "a@example.com", Age: intPtr(0)})
	assert.Nil(t, fields)
}
