package transition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/assetrack/internal/constants"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
)

// TestIsBackward covers all nine status pairs.
func TestIsBackward(t *testing.T) {
	t.Parallel()

	p, r, i := constants.ItemStatusPending, constants.ItemStatusReceived, constants.ItemStatusImplemented
	tests := []struct {
		from, to constants.ItemStatus
		want     bool
	}{
		{p, p, false}, {p, r, false}, {p, i, false},
		{r, p, true}, {r, r, false}, {r, i, false},
		{i, p, true}, {i, r, true}, {i, i, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsBackward(tt.from, tt.to))

			rf, _ := Rank(tt.from)
			rt, _ := Rank(tt.to)
			assert.Equal(t, rt < rf, IsBackward(tt.from, tt.to))
		})
	}
}

func TestIsBackward_UnknownStatus(t *testing.T) {
	t.Parallel()

	assert.False(t, IsBackward("lost", constants.ItemStatusPending))
	assert.False(t, IsBackward(constants.ItemStatusImplemented, "lost"))

	_, ok := Rank("lost")
	assert.False(t, ok)
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	got, err := ParseStatus(" Received ")
	require.NoError(t, err)
	assert.Equal(t, constants.ItemStatusReceived, got)

	_, err = ParseStatus("done")
	require.ErrorIs(t, err, atlaserrors.ErrInvalidStatus)
}

func TestValidateJustification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{name: "empty", text: "", wantErr: atlaserrors.ErrJustificationRequired},
		{name: "whitespace only", text: "   \t", wantErr: atlaserrors.ErrJustificationRequired},
		{name: "short", text: "short", wantErr: atlaserrors.ErrJustificationTooShort},
		{name: "nine chars padded", text: "  123456789  ", wantErr: atlaserrors.ErrJustificationTooShort},
		{name: "exactly ten", text: "1234567890"},
		{name: "multibyte counts runes", text: "éééééééééé"},
		{name: "long", text: "valid reason text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateJustification(tt.text)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
