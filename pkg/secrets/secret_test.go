package secrets_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/secrets"
)

func TestSecret_Expose(t *testing.T) {
	t.Parallel()

	s := secrets.New("hunter22")
	assert.Equal(t, "hunter22", s.Expose())

	b := secrets.New([]byte{0x01, 0x02})
	assert.Equal(t, []byte{0x01, 0x02}, b.Expose())
}

func TestSecret_Redaction(t *testing.T) {
	t.Parallel()

	s := secrets.New("super-secret-token")

	t.Run("fmt verbs never leak", func(t *testing.T) {
		t.Parallel()

		for _, out := range []string{
			fmt.Sprint(s),
			fmt.Sprintf("%s", s),
			fmt.Sprintf("%v", s),
			fmt.Sprintf("%+v", s),
			fmt.Sprintf("%#v", s),
			fmt.Sprintf("%q", s),
			fmt.Sprintf("%20s", s),
		} {
			assert.NotContains(t, out, "super-secret-token")
			assert.Contains(t, out, "[REDACTED]")
		}
	})

	t.Run("struct field formatting is redacted", func(t *testing.T) {
		t.Parallel()

		wrapper := struct {
			Name  string
			Token secrets.Secret[string]
		}{Name: "app", Token: s}

		out := fmt.Sprintf("%+v", wrapper)
		assert.NotContains(t, out, "super-secret-token")
	})

	t.Run("json marshal is redacted", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, `"[REDACTED]"`, string(data))
	})

	t.Run("slog output is redacted", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		log.Info("login", "token", s)

		assert.NotContains(t, buf.String(), "super-secret-token")
		assert.Contains(t, buf.String(), "[REDACTED]")
	})
}

func TestSecret_ZeroValue(t *testing.T) {
	t.Parallel()

	var s secrets.Secret[string]
	assert.Equal(t, "", s.Expose())
	assert.Equal(t, "[REDACTED]", s.String())
}
