package service

import (
	"context"
	"io"
	"sync"
	"time"

	"storefront-gateway/internal/platform/backend"
)

type fakeBackend struct {
	mu sync.Mutex

	createOrderCalls int
	createOrderErr   error
	lastOrderReq     *backend.CreateOrderRequest

	createStarsCalls int
	createStarsErr   error
	lastStarsReq     *backend.CreateStarsOrderRequest
	starsOrder       backend.StarsOrder

	detailCalls    int
	detailStatuses []string
	detailErr      error

	paymentStatusCalls []string
	paymentStatusErr   error

	screenshots   []string
	screenshotErr error
	ratingPhotos  []string

	settings backend.PaymentSettings
}

func (f *fakeBackend) CreateOrder(_ context.Context, req *backend.CreateOrderRequest) (*backend.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createOrderCalls++
	f.lastOrderReq = req
	if f.createOrderErr != nil {
		return nil, f.createOrderErr
	}
	return &backend.Order{ID: "order-1", Status: "PENDING", PaymentStatus: "PENDING"}, nil
}

func (f *fakeBackend) CreateStarsOrder(_ context.Context, req *backend.CreateStarsOrderRequest) (*backend.StarsOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createStarsCalls++
	f.lastStarsReq = req
	if f.createStarsErr != nil {
		return nil, f.createStarsErr
	}
	return &f.starsOrder, nil
}

func (f *fakeBackend) GetOrderDetail(_ context.Context, id string) (*backend.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls++
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	status := "PENDING"
	if len(f.detailStatuses) > 0 {
		status = f.detailStatuses[0]
		if len(f.detailStatuses) > 1 {
			f.detailStatuses = f.detailStatuses[1:]
		}
	}
	return &backend.Order{ID: id, PaymentStatus: status}, nil
}

func (f *fakeBackend) UpdatePaymentStatus(_ context.Context, id, paymentStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.paymentStatusErr != nil {
		return f.paymentStatusErr
	}
	f.paymentStatusCalls = append(f.paymentStatusCalls, id+":"+paymentStatus)
	return nil
}

func (f *fakeBackend) AttachScreenshot(_ context.Context, id, filename string, _ io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.screenshotErr != nil {
		return f.screenshotErr
	}
	f.screenshots = append(f.screenshots, id+":"+filename)
	return nil
}

func (f *fakeBackend) AttachRatingPhoto(_ context.Context, id, filename string, _ io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ratingPhotos = append(f.ratingPhotos, id+":"+filename)
	return nil
}

func (f *fakeBackend) GetPaymentSettings(_ context.Context) (*backend.PaymentSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &f.settings, nil
}

type fakeLocks struct {
	mu       sync.Mutex
	held     map[string]bool
	acquires int
	releases int
	failNext bool
}

func newFakeLocks() *fakeLocks {
	return &fakeLocks{held: map[string]bool{}}
}

func (f *fakeLocks) AcquireLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acquires++
	if f.failNext || f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeLocks) ReleaseLock(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases++
	delete(f.held, key)
	return nil
}
