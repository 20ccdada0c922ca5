package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/paymentmethod"
	"github.com/stripe/stripe-go/v76/subscription"
	"gorm.io/gorm"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/config"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/repository"
)

var (
	ErrNoCustomer  = errors.New("user does not have a billing account yet")
	ErrUnknownPlan = errors.New("unknown subscription plan")
)

// BillingService wraps the Stripe SDK for subscription billing. Webhook and
// dunning handling stay on Stripe's side; this service only creates
// customers, manages payment methods and drives the subscription lifecycle.
type BillingService interface {
	EnsureCustomer(user *models.User) (string, error)
	AttachPaymentMethod(user *models.User, paymentMethodID string) error
	ListPaymentMethods(user *models.User) ([]*stripe.PaymentMethod, error)
	Subscribe(user *models.User, plan string, paymentMethodID string) (*models.SubscriptionInfo, error)
	Unsubscribe(subscriptionID string) error
	ListSubscriptions(user *models.User) ([]models.SubscriptionInfo, error)
}

type billingService struct {
	userRepo repository.UserRepository
	db       *gorm.DB
	cfg      *config.Config
}

func NewBillingService(userRepo repository.UserRepository, db *gorm.DB) BillingService {
	cfg := config.GlobalConfig
	stripe.Key = cfg.StripeSecretKey
	return &billingService{userRepo: userRepo, db: db, cfg: cfg}
}

func (s *billingService) EnsureCustomer(user *models.User) (string, error) {
	if user.StripeCustomerID != "" {
		return user.StripeCustomerID, nil
	}

	cust, err := customer.New(&stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Name:  stripe.String(user.DisplayName),
	})
	if err != nil {
		return "", err
	}

	if err := s.userRepo.SetStripeCustomerID(user.ID, cust.ID); err != nil {
		return "", err
	}
	user.StripeCustomerID = cust.ID
	return cust.ID, nil
}

func (s *billingService) AttachPaymentMethod(user *models.User, paymentMethodID string) error {
	customerID, err := s.EnsureCustomer(user)
	if err != nil {
		return err
	}

	if _, err := paymentmethod.Attach(paymentMethodID, &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	}); err != nil {
		return err
	}

	_, err = customer.Update(customerID, &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	})
	return err
}

func (s *billingService) ListPaymentMethods(user *models.User) ([]*stripe.PaymentMethod, error) {
	if user.StripeCustomerID == "" {
		return nil, ErrNoCustomer
	}

	iter := paymentmethod.List(&stripe.PaymentMethodListParams{
		Customer: stripe.String(user.StripeCustomerID),
		Type:     stripe.String("card"),
	})

	methods := []*stripe.PaymentMethod{}
	for iter.Next() {
		methods = append(methods, iter.PaymentMethod())
	}
	return methods, iter.Err()
}

func (s *billingService) Subscribe(user *models.User, plan string, paymentMethodID string) (*models.SubscriptionInfo, error) {
	priceID, ok := s.cfg.StripePriceIDs[plan]
	if !ok || priceID == "" {
		return nil, ErrUnknownPlan
	}
	if user.StripeCustomerID == "" {
		return nil, ErrNoCustomer
	}

	sub, err := subscription.New(&stripe.SubscriptionParams{
		Customer:             stripe.String(user.StripeCustomerID),
		DefaultPaymentMethod: stripe.String(paymentMethodID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
	})
	if err != nil {
		return nil, err
	}

	info := subscriptionInfo(sub)

	log := models.PaymentLog{
		UserID:  user.ID,
		Amount:  info.Amount,
		Details: fmt.Sprintf("%s subscription %s", plan, sub.ID),
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, err
	}

	return &info, nil
}

func (s *billingService) Unsubscribe(subscriptionID string) error {
	_, err := subscription.Update(subscriptionID, &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(true),
	})
	return err
}

func (s *billingService) ListSubscriptions(user *models.User) ([]models.SubscriptionInfo, error) {
	if user.StripeCustomerID == "" {
		return nil, ErrNoCustomer
	}

	iter := subscription.List(&stripe.SubscriptionListParams{
		Customer: stripe.String(user.StripeCustomerID),
	})

	subs := []models.SubscriptionInfo{}
	for iter.Next() {
		subs = append(subs, subscriptionInfo(iter.Subscription()))
	}
	return subs, iter.Err()
}

func subscriptionInfo(sub *stripe.Subscription) models.SubscriptionInfo {
	info := models.SubscriptionInfo{
		ID:                 sub.ID,
		Status:             string(sub.Status),
		CurrentPeriodStart: time.Unix(sub.CurrentPeriodStart, 0).UTC().Format("2006-01-02"),
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		price := sub.Items.Data[0].Price
		info.PriceID = price.ID
		info.Amount = float64(price.UnitAmount) / 100
		info.Currency = string(price.Currency)
	}
	return info
}
