package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-gateway/internal/features/payment/models"
)

func TestConfirmMovesToAwaitingCheck(t *testing.T) {
	client := &fakeBackend{}
	s := &ConfirmationService{client: client}

	err := s.Confirm(context.Background(), models.MethodUSDT, "o1", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"o1:AWAITING_CHECK"}, client.paymentStatusCalls)
	assert.Empty(t, client.screenshots)
}

func TestConfirmAttachesProofsInOrder(t *testing.T) {
	client := &fakeBackend{}
	s := &ConfirmationService{client: client}

	screenshot := &Attachment{Filename: "proof.png", Content: strings.NewReader("img")}
	rating := &Attachment{Filename: "rating.jpg", Content: strings.NewReader("img")}

	err := s.Confirm(context.Background(), models.MethodPayPal, "o1", screenshot, rating)
	require.NoError(t, err)

	assert.Equal(t, []string{"o1:proof.png"}, client.screenshots)
	assert.Equal(t, []string{"o1:rating.jpg"}, client.ratingPhotos)
}

func TestConfirmStatusAppliedEvenWhenAttachFails(t *testing.T) {
	client := &fakeBackend{screenshotErr: errors.New("upload rejected")}
	s := &ConfirmationService{client: client}

	screenshot := &Attachment{Filename: "proof.png", Content: strings.NewReader("img")}
	err := s.Confirm(context.Background(), models.MethodUSDT, "o1", screenshot, nil)
	require.Error(t, err)

	// The status change is not rolled back; the failure is terminal for
	// the rest of the sequence only.
	assert.Equal(t, []string{"o1:AWAITING_CHECK"}, client.paymentStatusCalls)
	assert.Empty(t, client.ratingPhotos)
}

func TestConfirmRequiresOrderID(t *testing.T) {
	s := &ConfirmationService{client: &fakeBackend{}}
	err := s.Confirm(context.Background(), models.MethodUSDT, "", nil, nil)
	assert.Error(t, err)
}
