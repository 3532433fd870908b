package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"craftedbyher/logging"
	"craftedbyher/mailer"
	"craftedbyher/metrics"
	"craftedbyher/models"
	"craftedbyher/repository"
	"craftedbyher/workflow"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	freeShippingThreshold = 500
	shippingCharge        = 50
)

// Manager is the hub manager acting on an order.
type Manager struct {
	ID    string
	HubID string
}

func (m Manager) central() bool {
	return m.HubID == models.AllHubs
}

type OrderConfig struct {
	OTPTTL time.Duration
	// ArrivalDelay > 0 marks dispatched orders as arrived after the delay.
	ArrivalDelay   time.Duration
	PaymentSecret  string
	PaymentGateway string
}

type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	carts    repository.CartRepository
	hubs     *HubService
	notifier *Notifier
	mail     mailer.Sender
	cfg      OrderConfig
	now      func() time.Time
	log      zerolog.Logger

	mu       sync.Mutex
	arrivals map[primitive.ObjectID]*time.Timer
	stopped  bool
	firing   sync.WaitGroup
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	carts repository.CartRepository,
	hubs *HubService,
	notifier *Notifier,
	mail mailer.Sender,
	cfg OrderConfig,
) *OrderService {
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = workflow.DefaultOTPTTL
	}
	if cfg.PaymentGateway == "" {
		cfg.PaymentGateway = "razorpay"
	}
	if mail == nil {
		mail = mailer.Noop{}
	}
	return &OrderService{
		orders:   orders,
		products: products,
		carts:    carts,
		hubs:     hubs,
		notifier: notifier,
		mail:     mail,
		cfg:      cfg,
		now:      time.Now,
		log:      logging.NewPackageLogger("orders"),
		arrivals: map[primitive.ObjectID]*time.Timer{},
	}
}

// NewOrderNumber is "ORD" + last 6 digits of the unix millis + 3 random digits.
func NewOrderNumber(now time.Time) string {
	ms := now.UnixMilli() % 1000000
	return fmt.Sprintf("ORD%06d%03d", ms, rand.Intn(1000))
}

// Shipping is free from 500 upwards.
func Shipping(total float64) float64 {
	if total >= freeShippingThreshold {
		return 0
	}
	return shippingCharge
}

type OrderItemInput struct {
	ProductID string `json:"productId"`
	Weight    string `json:"weight"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderInput struct {
	Items         []OrderItemInput    `json:"items"`
	BuyerDetails  models.BuyerDetails `json:"buyerDetails"`
	PaymentMethod string              `json:"paymentMethod"`
	Notes         string              `json:"notes"`
}

func (in CreateOrderInput) validate() error {
	if len(in.Items) == 0 {
		return fail(ErrValidation, "Order items are required")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return fail(ErrValidation, "Item quantity must be positive")
		}
	}
	b := in.BuyerDetails
	if strings.TrimSpace(b.Name) == "" || strings.TrimSpace(b.Email) == "" || strings.TrimSpace(b.Phone) == "" {
		return fail(ErrValidation, "Buyer details are required")
	}
	if in.PaymentMethod != models.PaymentCOD && in.PaymentMethod != models.PaymentOnline {
		return fail(ErrValidation, "Valid payment method is required")
	}
	return nil
}

type reservation struct {
	id  primitive.ObjectID
	qty int
}

func (s *OrderService) release(ctx context.Context, held []reservation) {
	for _, r := range held {
		if err := s.products.ReleaseStock(ctx, r.id, r.qty); err != nil {
			s.log.Error().Err(err).Str("product", r.id.Hex()).Int("qty", r.qty).Msg("release stock")
		}
	}
}

// Create prices the items from the catalogue, reserves stock and stores the order.
func (s *OrderService) Create(ctx context.Context, buyerUID string, in CreateOrderInput) (*models.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var (
		items []models.OrderItem
		held  []reservation
		total float64
	)
	for _, it := range in.Items {
		pid, err := parseID(it.ProductID, "product")
		if err != nil {
			s.release(ctx, held)
			return nil, err
		}
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			s.release(ctx, held)
			return nil, storeErr(err, "Product")
		}
		if !p.Listed() {
			s.release(ctx, held)
			return nil, fail(ErrValidation, "%s is not available", p.Title)
		}
		variant, ok := p.FindVariant(it.Weight)
		if !ok {
			if it.Weight != "" || len(p.Variants) == 0 {
				s.release(ctx, held)
				return nil, fail(ErrValidation, "Variant %q not found for %s", it.Weight, p.Title)
			}
			variant = p.Variants[0]
		}
		if err := s.products.ReserveStock(ctx, pid, it.Quantity); err != nil {
			s.release(ctx, held)
			if errors.Is(err, repository.ErrStale) {
				return nil, fail(ErrValidation, "Not enough stock for %s, available: %d", p.Title, p.Stock)
			}
			return nil, storeErr(err, "Product")
		}
		held = append(held, reservation{pid, it.Quantity})

		items = append(items, models.OrderItem{
			ProductID: pid,
			Title:     p.Title,
			Image:     p.Image,
			Variant:   variant,
			Quantity:  it.Quantity,
			SellerID:  p.SellerID,
		})
		total += variant.Price * float64(it.Quantity)
	}

	now := s.now()
	ship := Shipping(total)
	o := &models.Order{
		UserID:          buyerUID,
		Items:           items,
		BuyerDetails:    in.BuyerDetails,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		OrderStatus:     workflow.StatusCreated,
		TotalAmount:     total,
		ShippingCharges: ship,
		FinalAmount:     total + ship,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var err error
	for attempt := 0; attempt < 3; attempt++ {
		o.ID = primitive.NilObjectID
		o.OrderNumber = NewOrderNumber(s.now())
		if err = s.orders.Create(ctx, o); !errors.Is(err, repository.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		s.release(ctx, held)
		return nil, storeErr(err, "Order")
	}

	if err := s.carts.Clear(ctx, buyerUID); err != nil {
		s.log.Warn().Err(err).Str(logging.USER, buyerUID).Msg("clear cart after order")
	}
	metrics.OrderTransitions.WithLabelValues(workflow.StatusCreated).Inc()
	s.log.Info().Str(logging.ORDER, o.OrderNumber).Str(logging.USER, buyerUID).Float64("amount", o.FinalAmount).Msg("order created")
	s.notifier.OrderEvent(ctx, o, workflow.StatusCreated)
	return o, nil
}

func (s *OrderService) load(ctx context.Context, id string) (*models.Order, error) {
	oid, err := parseID(id, "order")
	if err != nil {
		return nil, err
	}
	o, err := s.orders.FindByID(ctx, oid)
	return o, storeErr(err, "Order")
}

func (s *OrderService) loadByNumber(ctx context.Context, number string) (*models.Order, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fail(ErrValidation, "Order number is required")
	}
	o, err := s.orders.FindByNumber(ctx, number)
	return o, storeErr(err, "Order")
}

// advance applies a transition, persists it conditionally on the previous status,
// and records it. mutate runs after the status change and before the write.
func (s *OrderService) advance(ctx context.Context, o *models.Order, to string, mutate func(*models.Order) error) error {
	from := o.OrderStatus
	if err := workflow.Transition(o, to, s.now()); err != nil {
		return err
	}
	if mutate != nil {
		if err := mutate(o); err != nil {
			o.OrderStatus = from
			return err
		}
	}
	if err := s.orders.Save(ctx, o, from); err != nil {
		return storeErr(err, "Order")
	}
	metrics.OrderTransitions.WithLabelValues(to).Inc()
	s.log.Info().Str(logging.ORDER, o.OrderNumber).Str("from", from).Str(logging.STATUS, to).Msg("order status changed")
	return nil
}

func (s *OrderService) Mine(ctx context.Context, buyerUID string) ([]models.Order, error) {
	orders, err := s.orders.FindByUser(ctx, buyerUID)
	return orders, storeErr(err, "orders")
}

// GetMine hides other buyers' orders behind not-found.
func (s *OrderService) GetMine(ctx context.Context, buyerUID, id string) (*models.Order, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != buyerUID {
		return nil, fail(ErrNotFound, "Order not found")
	}
	return o, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.load(ctx, id)
}

func (s *OrderService) List(ctx context.Context, f models.OrderFilter) ([]models.Order, int64, error) {
	for _, st := range f.Statuses {
		if !workflow.IsValid(st) {
			return nil, 0, fail(ErrValidation, "Unknown order status %q", st)
		}
	}
	orders, total, err := s.orders.Find(ctx, f)
	return orders, total, storeErr(err, "orders")
}

// Cancel is open to the buyer while the order has not left the seller hub.
func (s *OrderService) Cancel(ctx context.Context, buyerUID, id string) (*models.Order, error) {
	o, err := s.GetMine(ctx, buyerUID, id)
	if err != nil {
		return nil, err
	}
	return o, s.cancel(ctx, o)
}

func (s *OrderService) AdminCancel(ctx context.Context, id string) (*models.Order, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return o, s.cancel(ctx, o)
}

func (s *OrderService) cancel(ctx context.Context, o *models.Order) error {
	if !workflow.Cancellable(o.OrderStatus) {
		return fail(ErrValidation, "Cannot cancel an order that is %s", strings.ReplaceAll(o.OrderStatus, "_", " "))
	}
	from := o.OrderStatus
	err := s.advance(ctx, o, workflow.StatusCancelled, func(o *models.Order) error {
		if o.PaymentStatus == models.PaymentPaid {
			o.PaymentStatus = models.PaymentRefunded
		}
		return nil
	})
	if err != nil {
		return err
	}
	held := make([]reservation, 0, len(o.Items))
	for _, it := range o.Items {
		held = append(held, reservation{it.ProductID, it.Quantity})
	}
	s.release(ctx, held)
	if from != workflow.StatusCreated && o.HubTracking != nil {
		s.hubs.Adjust(ctx, o.HubTracking.SellerHubID, map[string]int{
			models.HubCurrentOrders:   -1,
			models.HubOrdersInTransit: -1,
		})
	}
	s.notifier.OrderEvent(ctx, o, workflow.StatusCancelled)
	return nil
}

type PaymentInput struct {
	GatewayOrderID string `json:"razorpay_order_id"`
	PaymentID      string `json:"razorpay_payment_id"`
	Signature      string `json:"razorpay_signature"`
}

// PaymentSignature is hex(HMAC-SHA256(secret, gatewayOrderID|paymentID)).
func PaymentSignature(secret, gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// RecordPayment marks an online order paid. The signature is checked when a secret is configured.
func (s *OrderService) RecordPayment(ctx context.Context, buyerUID, id string, in PaymentInput) (*models.Order, error) {
	o, err := s.GetMine(ctx, buyerUID, id)
	if err != nil {
		return nil, err
	}
	if o.PaymentMethod != models.PaymentOnline {
		return nil, fail(ErrValidation, "This order is not for online payment")
	}
	if o.PaymentStatus == models.PaymentPaid {
		return nil, fail(ErrConflict, "Order is already paid")
	}
	if o.OrderStatus == workflow.StatusCancelled {
		return nil, fail(ErrValidation, "Order is cancelled")
	}
	if in.PaymentID == "" {
		return nil, fail(ErrValidation, "Payment id is required")
	}
	if s.cfg.PaymentSecret != "" {
		want := PaymentSignature(s.cfg.PaymentSecret, in.GatewayOrderID, in.PaymentID)
		if !hmac.Equal([]byte(want), []byte(in.Signature)) {
			return nil, fail(ErrValidation, "Invalid payment signature")
		}
	}
	now := s.now()
	o.PaymentStatus = models.PaymentPaid
	o.PaymentDetails = &models.PaymentDetails{
		TransactionID:  in.PaymentID,
		GatewayOrderID: in.GatewayOrderID,
		PaymentGateway: s.cfg.PaymentGateway,
		PaidAt:         now,
	}
	o.UpdatedAt = now
	if err := s.orders.Save(ctx, o, o.OrderStatus); err != nil {
		return nil, storeErr(err, "Order")
	}
	s.log.Info().Str(logging.ORDER, o.OrderNumber).Str("payment", in.PaymentID).Msg("payment recorded")
	return o, nil
}

func (s *OrderService) SellerOrders(ctx context.Context, sellerUID string) ([]models.Order, error) {
	orders, err := s.orders.FindBySeller(ctx, sellerUID)
	return orders, storeErr(err, "orders")
}

// MoveToSellerHub hands the order to a hub: the one named by hubID, or the first
// active hub in the seller's district.
func (s *OrderService) MoveToSellerHub(ctx context.Context, sellerUID, id, hubID string) (*models.Order, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.HasSeller(sellerUID) {
		return nil, fail(ErrForbidden, "You are not a seller on this order")
	}
	if o.HubTracking != nil && o.HubTracking.SellerHubID != "" {
		return nil, fail(ErrConflict, "Order is already at hub %s", o.HubTracking.SellerHubName)
	}

	var hub *models.Hub
	if hubID != "" {
		if hub, err = s.hubs.Get(ctx, hubID); err != nil {
			return nil, err
		}
		if hub.Status != models.HubActive {
			return nil, fail(ErrValidation, "Hub %s is not active", hub.Name)
		}
	} else {
		district, err := s.hubs.SellerDistrict(ctx, sellerUID)
		if err != nil {
			return nil, err
		}
		if hub, err = s.hubs.RouteToDistrict(ctx, district); err != nil {
			return nil, err
		}
	}

	err = s.advance(ctx, o, workflow.StatusAtSellerHub, func(o *models.Order) error {
		now := s.now()
		ht := o.Tracking()
		ht.SellerHubID = hub.HubID
		ht.SellerHubName = hub.Name
		ht.SellerHubDistrict = hub.District
		ht.ArrivedAtSellerHub = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.hubs.Adjust(ctx, hub.HubID, map[string]int{
		models.HubCurrentOrders:   1,
		models.HubOrdersInTransit: 1,
	})
	s.notifier.OrderEvent(ctx, o, workflow.StatusAtSellerHub)
	return o, nil
}

// Approve records admin approval and routes the order to the buyer's district hub.
func (s *OrderService) Approve(ctx context.Context, adminUID, id string) (*models.Order, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return o, s.approve(ctx, adminUID, o)
}

func (s *OrderService) approve(ctx context.Context, adminUID string, o *models.Order) error {
	if o.OrderStatus != workflow.StatusAtSellerHub {
		return fmt.Errorf("%w: order must be at the seller hub to approve, current status: %s", workflow.ErrInvalidTransition, o.OrderStatus)
	}
	district := s.hubs.BuyerDistrict(o.BuyerDetails.Address)
	hub, err := s.hubs.RouteToDistrict(ctx, district)
	if err != nil {
		return err
	}
	err = s.advance(ctx, o, workflow.StatusAdminApproved, func(o *models.Order) error {
		now := s.now()
		ht := o.Tracking()
		ht.ApprovedByAdmin = true
		ht.AdminApprovedAt = &now
		ht.AdminApprovedBy = adminUID
		ht.CustomerHubID = hub.HubID
		ht.CustomerHubName = hub.Name
		ht.CustomerHubDistrict = hub.District
		return nil
	})
	if err != nil {
		return err
	}
	s.notifier.OrderEvent(ctx, o, workflow.StatusAdminApproved)
	return nil
}

func (s *OrderService) Dispatch(ctx context.Context, id string) (*models.Order, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return o, s.dispatch(ctx, o)
}

func (s *OrderService) dispatch(ctx context.Context, o *models.Order) error {
	err := s.advance(ctx, o, workflow.StatusInTransit, func(o *models.Order) error {
		now := s.now()
		o.Tracking().DispatchedAt = &now
		return nil
	})
	if err != nil {
		return err
	}
	s.hubs.Adjust(ctx, o.HubTracking.SellerHubID, map[string]int{
		models.HubCurrentOrders:    -1,
		models.HubOrdersDispatched: 1,
	})
	s.notifier.OrderEvent(ctx, o, workflow.StatusInTransit)
	s.scheduleArrival(o.ID)
	return nil
}

// ApproveAndDispatch is the admin's single "approve and send" action.
func (s *OrderService) ApproveAndDispatch(ctx context.Context, adminUID, id string) (*models.Order, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.approve(ctx, adminUID, o); err != nil {
		return nil, err
	}
	return o, s.dispatch(ctx, o)
}

func (s *OrderService) scheduleArrival(id primitive.ObjectID) {
	if s.cfg.ArrivalDelay <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if t, ok := s.arrivals[id]; ok {
		t.Stop()
	}
	s.arrivals[id] = time.AfterFunc(s.cfg.ArrivalDelay, func() {
		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			return
		}
		delete(s.arrivals, id)
		s.firing.Add(1)
		s.mu.Unlock()
		defer s.firing.Done()
		s.arriveLater(id)
	})
}

func (s *OrderService) arriveLater(id primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id.Hex()).Msg("scheduled arrival: load order")
		return
	}
	if o.OrderStatus != workflow.StatusInTransit {
		return
	}
	if err := s.arrive(ctx, o); err != nil {
		s.log.Error().Err(err).Str(logging.ORDER, o.OrderNumber).Msg("scheduled arrival")
	}
}

// Stop drops pending scheduled arrivals and waits for any already running.
// Nothing is scheduled afterwards.
func (s *OrderService) Stop() {
	s.mu.Lock()
	s.stopped = true
	pending := len(s.arrivals)
	for id, t := range s.arrivals {
		t.Stop()
		delete(s.arrivals, id)
	}
	s.mu.Unlock()
	s.firing.Wait()
	s.log.Debug().Int("pending", pending).Msg("order timers stopped")
}

func (s *OrderService) checkHub(m Manager, o *models.Order) error {
	if m.central() {
		return nil
	}
	if o.HubTracking == nil || o.HubTracking.CustomerHubID != m.HubID {
		return fail(ErrForbidden, "Order %s is not assigned to your hub", o.OrderNumber)
	}
	return nil
}

// MarkArrived receives an in-transit order at the customer hub, issues the pickup OTP
// and emails it to the buyer.
func (s *OrderService) MarkArrived(ctx context.Context, m Manager, id string) (*models.Order, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkHub(m, o); err != nil {
		return nil, err
	}
	return o, s.arrive(ctx, o)
}

func (s *OrderService) arrive(ctx context.Context, o *models.Order) error {
	var otp string
	err := s.advance(ctx, o, workflow.StatusAtCustomerHub, func(o *models.Order) error {
		now := s.now()
		o.Tracking().ArrivedAtCustomerHub = &now
		var err error
		otp, err = workflow.IssueOTP(o, now, s.cfg.OTPTTL)
		return err
	})
	if err != nil {
		return err
	}
	s.hubs.Adjust(ctx, o.HubTracking.CustomerHubID, map[string]int{
		models.HubCurrentOrders:        1,
		models.HubOrdersReadyForPickup: 1,
	})
	s.sendOTP(ctx, o, otp)
	s.notifier.OrderEvent(ctx, o, workflow.StatusAtCustomerHub)
	return nil
}

func (s *OrderService) sendOTP(ctx context.Context, o *models.Order, otp string) {
	if err := s.mail.SendPickupOTP(ctx, mailer.NewPickupOTP(o, otp)); err != nil {
		s.log.Error().Err(err).Str(logging.ORDER, o.OrderNumber).Msg("email pickup OTP")
	}
}

// GenerateOTP replaces a used or expired pickup code.
func (s *OrderService) GenerateOTP(ctx context.Context, m Manager, orderNumber string) (*models.Order, error) {
	o, err := s.loadByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if err := s.checkHub(m, o); err != nil {
		return nil, err
	}
	otp, err := workflow.IssueOTP(o, s.now(), s.cfg.OTPTTL)
	if err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o, o.OrderStatus); err != nil {
		return nil, storeErr(err, "Order")
	}
	s.log.Info().Str(logging.ORDER, o.OrderNumber).Str(logging.MANAGER, m.ID).Msg("pickup OTP regenerated")
	s.sendOTP(ctx, o, otp)
	return o, nil
}

// VerifyPickup checks the buyer's OTP and completes the order.
func (s *OrderService) VerifyPickup(ctx context.Context, m Manager, orderNumber, otp string) (*models.Order, error) {
	o, err := s.loadByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if err := s.checkHub(m, o); err != nil {
		return nil, err
	}
	if o.OrderStatus != workflow.StatusAtCustomerHub && o.OrderStatus != workflow.StatusDelivered {
		return nil, fmt.Errorf("%w: order is not at customer hub yet, current status: %s", workflow.ErrInvalidTransition, o.OrderStatus)
	}
	from := o.OrderStatus
	if err := workflow.VerifyOTP(o, otp, s.now()); err != nil {
		return nil, err
	}
	if o.PaymentMethod == models.PaymentCOD && o.PaymentStatus == models.PaymentPending {
		o.PaymentStatus = models.PaymentPaid
	}
	if err := s.orders.Save(ctx, o, from); err != nil {
		return nil, storeErr(err, "Order")
	}
	metrics.OrderTransitions.WithLabelValues(workflow.StatusDelivered).Inc()
	s.log.Info().Str(logging.ORDER, o.OrderNumber).Str(logging.MANAGER, m.ID).Msg("order picked up")
	s.hubs.Adjust(ctx, o.HubTracking.CustomerHubID, map[string]int{
		models.HubCurrentOrders:        -1,
		models.HubTotalProcessed:       1,
		models.HubOrdersReadyForPickup: -1,
	})
	s.notifier.OrderEvent(ctx, o, workflow.StatusDelivered)
	return o, nil
}

// HubOrders lists orders touching the manager's hub; central managers see all.
func (s *OrderService) HubOrders(ctx context.Context, m Manager, f models.OrderFilter) ([]models.Order, int64, error) {
	f.HubID = m.HubID
	return s.List(ctx, f)
}

func (s *OrderService) HubStats(ctx context.Context, hubID string) (models.HubOrderStats, error) {
	st, err := s.orders.HubStats(ctx, hubID)
	return st, storeErr(err, "orders")
}

type TrackingStep struct {
	Status    string     `json:"status"`
	Completed bool       `json:"completed"`
	At        *time.Time `json:"at,omitempty"`
}

type TrackingView struct {
	OrderNumber string              `json:"orderNumber"`
	Status      string              `json:"orderStatus"`
	HubTracking *models.HubTracking `json:"hubTracking,omitempty"`
	SellerHub   *models.HubSummary  `json:"sellerHub,omitempty"`
	CustomerHub *models.HubSummary  `json:"customerHub,omitempty"`
	Timeline    []TrackingStep      `json:"timeline"`
}

// Tracking shows the buyer where the order is. The OTP itself is never included.
func (s *OrderService) Tracking(ctx context.Context, buyerUID, id string) (*TrackingView, error) {
	o, err := s.GetMine(ctx, buyerUID, id)
	if err != nil {
		return nil, err
	}
	v := &TrackingView{
		OrderNumber: o.OrderNumber,
		Status:      o.OrderStatus,
		HubTracking: o.HubTracking,
		Timeline:    timeline(o),
	}
	if ht := o.HubTracking; ht != nil {
		if ht.SellerHubID != "" {
			if h, err := s.hubs.Get(ctx, ht.SellerHubID); err == nil {
				v.SellerHub = h.Summary()
			}
		}
		if ht.CustomerHubID != "" {
			if h, err := s.hubs.Get(ctx, ht.CustomerHubID); err == nil {
				v.CustomerHub = h.Summary()
			}
		}
	}
	return v, nil
}

func timeline(o *models.Order) []TrackingStep {
	ht := o.HubTracking
	if ht == nil {
		ht = &models.HubTracking{}
	}
	created := o.CreatedAt
	at := map[string]*time.Time{
		workflow.StatusCreated:       &created,
		workflow.StatusAtSellerHub:   ht.ArrivedAtSellerHub,
		workflow.StatusAdminApproved: ht.AdminApprovedAt,
		workflow.StatusInTransit:     ht.DispatchedAt,
		workflow.StatusAtCustomerHub: ht.ArrivedAtCustomerHub,
		workflow.StatusDelivered:     ht.DeliveredAt,
	}
	var steps []TrackingStep
	reached := true
	for _, st := range workflow.Statuses() {
		if st == workflow.StatusCancelled {
			continue
		}
		step := TrackingStep{Status: st, Completed: reached, At: at[st]}
		if !reached {
			step.At = nil
		}
		steps = append(steps, step)
		if st == o.OrderStatus {
			reached = false
		}
	}
	if o.OrderStatus == workflow.StatusCancelled {
		for i := range steps {
			steps[i].Completed = steps[i].At != nil
		}
		steps = append(steps, TrackingStep{Status: workflow.StatusCancelled, Completed: true, At: &o.UpdatedAt})
	}
	return steps
}
