package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evently/internal/domain"
)

func TestTemplateRenderer_OrderConfirmation(t *testing.T) {
	renderer := NewTemplateRenderer()

	t.Run("paid ticket", func(t *testing.T) {
		data := &domain.OrderConfirmationEmailData{
			Email:       "ada@example.com",
			FirstName:   "Ada",
			EventTitle:  "Jazz Night",
			Reference:   "ref-123",
			TotalAmount: "25",
		}
		subject, htmlBody, textBody, err := renderer.Render("order_confirmation", data)
		require.NoError(t, err)
		assert.Equal(t, "Your ticket for Jazz Night", subject)
		assert.Contains(t, htmlBody, "Hi Ada")
		assert.Contains(t, htmlBody, "ref-123")
		assert.Contains(t, htmlBody, "Amount charged: 25")
		assert.Contains(t, textBody, "Your order for Jazz Night is confirmed.")
		assert.Contains(t, textBody, "Amount charged: 25")
	})

	t.Run("free ticket omits the amount", func(t *testing.T) {
		data := &domain.OrderConfirmationEmailData{
			Email:      "ada@example.com",
			EventTitle: "Open Mic",
			Reference:  "ref-456",
			IsFree:     true,
		}
		_, htmlBody, textBody, err := renderer.Render("order_confirmation", data)
		require.NoError(t, err)
		assert.Contains(t, htmlBody, "This was a free ticket.")
		assert.NotContains(t, htmlBody, "Amount charged")
		assert.Contains(t, textBody, "This was a free ticket.")
	})

	t.Run("event title is html-escaped", func(t *testing.T) {
		data := &domain.OrderConfirmationEmailData{
			EventTitle: "Fish & Chips <Live>",
			Reference:  "ref-789",
			IsFree:     true,
		}
		_, htmlBody, textBody, err := renderer.Render("order_confirmation", data)
		require.NoError(t, err)
		assert.Contains(t, htmlBody, "Fish &amp; Chips &lt;Live&gt;")
		assert.Contains(t, textBody, "Fish & Chips <Live>")
	})
}

func TestTemplateRenderer_Welcome(t *testing.T) {
	renderer := NewTemplateRenderer()

	subject, htmlBody, textBody, err := renderer.Render("welcome", &domain.WelcomeMessageEmailData{
		Email:     "ada@example.com",
		FirstName: "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Evently, Ada!", subject)
	assert.Contains(t, htmlBody, "Hi Ada")
	assert.Contains(t, textBody, "Your Evently account is ready.")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	renderer := NewTemplateRenderer()

	_, _, _, err := renderer.Render("no_such_template", struct{}{})
	require.Error(t, err)
}
