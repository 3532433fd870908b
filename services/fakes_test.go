package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"craftedbyher/mailer"
	"craftedbyher/models"
	"craftedbyher/repository"
	"craftedbyher/workflow"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func cloneOrder(o *models.Order) *models.Order {
	c := *o
	c.Items = append([]models.OrderItem(nil), o.Items...)
	if o.HubTracking != nil {
		ht := *o.HubTracking
		c.HubTracking = &ht
	}
	return &c
}

type memOrders struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.Order
}

func newMemOrders() *memOrders {
	return &memOrders{byID: map[primitive.ObjectID]*models.Order{}}
}

func (m *memOrders) Create(_ context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byID {
		if e.OrderNumber == o.OrderNumber {
			return repository.ErrDuplicate
		}
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	m.byID[o.ID] = cloneOrder(o)
	return nil
}

func (m *memOrders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (m *memOrders) FindByNumber(_ context.Context, number string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.byID {
		if o.OrderNumber == number {
			return cloneOrder(o), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memOrders) filter(keep func(*models.Order) bool) []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for _, o := range m.byID {
		if keep(o) {
			out = append(out, *cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memOrders) FindByUser(_ context.Context, userID string) ([]models.Order, error) {
	return m.filter(func(o *models.Order) bool { return o.UserID == userID }), nil
}

func (m *memOrders) FindBySeller(_ context.Context, sellerID string) ([]models.Order, error) {
	return m.filter(func(o *models.Order) bool { return o.HasSeller(sellerID) }), nil
}

func touchesHub(o *models.Order, hubID string) bool {
	if hubID == "" || hubID == models.AllHubs {
		return true
	}
	ht := o.HubTracking
	return ht != nil && (ht.SellerHubID == hubID || ht.CustomerHubID == hubID)
}

func (m *memOrders) Find(_ context.Context, f models.OrderFilter) ([]models.Order, int64, error) {
	out := m.filter(func(o *models.Order) bool {
		if !touchesHub(o, f.HubID) {
			return false
		}
		if len(f.Statuses) > 0 {
			found := false
			for _, s := range f.Statuses {
				found = found || s == o.OrderStatus
			}
			if !found {
				return false
			}
		}
		return f.Location == "" || (o.HubTracking != nil && o.HubTracking.CurrentLocation == f.Location)
	})
	return out, int64(len(out)), nil
}

func (m *memOrders) Save(_ context.Context, o *models.Order, fromStatus string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.byID[o.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if cur.OrderStatus != fromStatus || cur.Version != o.Version {
		return repository.ErrStale
	}
	o.Version++
	m.byID[o.ID] = cloneOrder(o)
	return nil
}

func (m *memOrders) HubStats(_ context.Context, hubID string) (models.HubOrderStats, error) {
	var st models.HubOrderStats
	m.mu.Lock()
	defer m.mu.Unlock()
	central := hubID == "" || hubID == models.AllHubs
	for _, o := range m.byID {
		ht := o.HubTracking
		if ht == nil {
			ht = &models.HubTracking{}
		}
		atSeller := central || ht.SellerHubID == hubID
		atCustomer := central || ht.CustomerHubID == hubID
		switch {
		case o.OrderStatus == workflow.StatusAtSellerHub && atSeller:
			st.AtSellerHub++
		case o.OrderStatus == workflow.StatusInTransit && atCustomer:
			st.InboundDispatch++
		case o.OrderStatus == workflow.StatusAtCustomerHub && atCustomer:
			st.AtCustomerHub++
		case o.OrderStatus == workflow.StatusDelivered && atCustomer:
			st.Delivered++
		}
		if touchesHub(o, hubID) {
			st.TotalOrders++
		}
	}
	return st, nil
}

type memProducts struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.Product
}

func newMemProducts(ps ...models.Product) *memProducts {
	m := &memProducts{byID: map[primitive.ObjectID]*models.Product{}}
	for i := range ps {
		p := ps[i]
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		m.byID[p.ID] = &p
	}
	return m
}

func (m *memProducts) Create(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	c := *p
	m.byID[p.ID] = &c
	return nil
}

func (m *memProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (m *memProducts) list(keep func(*models.Product) bool) []models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, p := range m.byID {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out
}

func (m *memProducts) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	want := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return m.list(func(p *models.Product) bool { return want[p.ID] }), nil
}

func (m *memProducts) ListPublic(context.Context) ([]models.Product, error) {
	return m.list(func(p *models.Product) bool {
		return p.IsActive && p.ApprovalStatus == models.ApprovalApproved
	}), nil
}

func (m *memProducts) ListBySeller(_ context.Context, sellerID string) ([]models.Product, error) {
	return m.list(func(p *models.Product) bool { return p.SellerID == sellerID }), nil
}

func (m *memProducts) ListByApproval(_ context.Context, status string) ([]models.Product, error) {
	return m.list(func(p *models.Product) bool { return status == "" || p.ApprovalStatus == status }), nil
}

func (m *memProducts) ListWithoutSeller(context.Context) ([]models.Product, error) {
	return m.list(func(p *models.Product) bool { return p.SellerID == "" }), nil
}

func (m *memProducts) with(id primitive.ObjectID, fn func(*models.Product) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	return fn(p)
}

func (m *memProducts) SetApproval(_ context.Context, id primitive.ObjectID, status, reason, by string, at time.Time) error {
	return m.with(id, func(p *models.Product) error {
		p.ApprovalStatus, p.RejectionReason = status, reason
		if status == models.ApprovalApproved {
			p.ApprovedBy, p.ApprovedAt = by, &at
		}
		return nil
	})
}

func (m *memProducts) AssignSeller(_ context.Context, id primitive.ObjectID, seller models.User) error {
	return m.with(id, func(p *models.Product) error {
		p.SellerID, p.SellerName, p.SellerEmail = seller.UID, seller.Name, seller.Email
		return nil
	})
}

func (m *memProducts) ReserveStock(_ context.Context, id primitive.ObjectID, qty int) error {
	return m.with(id, func(p *models.Product) error {
		if p.Stock < qty {
			return repository.ErrStale
		}
		p.Stock -= qty
		return nil
	})
}

func (m *memProducts) ReleaseStock(_ context.Context, id primitive.ObjectID, qty int) error {
	return m.with(id, func(p *models.Product) error {
		p.Stock += qty
		return nil
	})
}

type memHubs struct {
	mu   sync.Mutex
	hubs []*models.Hub
}

func (m *memHubs) find(hubID string) *models.Hub {
	for _, h := range m.hubs {
		if h.HubID == hubID {
			return h
		}
	}
	return nil
}

func (m *memHubs) Create(_ context.Context, h *models.Hub) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find(h.HubID) != nil {
		return repository.ErrDuplicate
	}
	c := *h
	m.hubs = append(m.hubs, &c)
	return nil
}

func (m *memHubs) FindByHubID(_ context.Context, hubID string) (*models.Hub, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.find(hubID)
	if h == nil {
		return nil, repository.ErrNotFound
	}
	c := *h
	return &c, nil
}

func (m *memHubs) List(_ context.Context, status, district string) ([]models.Hub, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Hub{}
	for _, h := range m.hubs {
		if (status == "" || h.Status == status) && (district == "" || strings.EqualFold(h.District, district)) {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (m *memHubs) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.hubs)), nil
}

func (m *memHubs) IncStats(_ context.Context, hubID string, inc map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.find(hubID)
	if h == nil {
		return repository.ErrNotFound
	}
	for k, v := range inc {
		switch k {
		case models.HubCurrentOrders:
			h.Capacity.CurrentOrders += v
		case models.HubOrdersInTransit:
			h.Stats.OrdersInTransit += v
		case models.HubOrdersReadyForPickup:
			h.Stats.OrdersReadyForPickup += v
		case models.HubOrdersDispatched:
			h.Stats.OrdersDispatched += v
		case models.HubTotalProcessed:
			h.Stats.TotalOrdersProcessed += v
		}
	}
	return nil
}

func (m *memHubs) SetStatus(_ context.Context, hubID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.find(hubID)
	if h == nil {
		return repository.ErrNotFound
	}
	h.Status = status
	return nil
}

func (m *memHubs) AssignManager(_ context.Context, hubID, managerID, managerName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.find(hubID)
	if h == nil {
		return repository.ErrNotFound
	}
	h.ManagerID, h.ManagerName = managerID, managerName
	return nil
}

type memManagers struct {
	mu   sync.Mutex
	list []*models.HubManager
}

func (m *memManagers) get(match func(*models.HubManager) bool) *models.HubManager {
	for _, x := range m.list {
		if match(x) {
			return x
		}
	}
	return nil
}

func (m *memManagers) Create(_ context.Context, hm *models.HubManager) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.get(func(x *models.HubManager) bool { return x.ManagerID == hm.ManagerID || x.Email == hm.Email }) != nil {
		return repository.ErrDuplicate
	}
	c := *hm
	m.list = append(m.list, &c)
	return nil
}

func (m *memManagers) one(match func(*models.HubManager) bool) (*models.HubManager, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	x := m.get(match)
	if x == nil {
		return nil, repository.ErrNotFound
	}
	c := *x
	return &c, nil
}

func (m *memManagers) FindByEmail(_ context.Context, email string) (*models.HubManager, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return m.one(func(x *models.HubManager) bool { return x.Email == email })
}

func (m *memManagers) FindByManagerID(_ context.Context, id string) (*models.HubManager, error) {
	return m.one(func(x *models.HubManager) bool { return x.ManagerID == id })
}

func (m *memManagers) FindActiveByHub(_ context.Context, hubID string) ([]models.HubManager, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.HubManager{}
	for _, x := range m.list {
		if x.HubID == hubID && x.Status == models.ManagerActive {
			out = append(out, *x)
		}
	}
	return out, nil
}

func (m *memManagers) List(context.Context) ([]models.HubManager, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.HubManager{}
	for _, x := range m.list {
		out = append(out, *x)
	}
	return out, nil
}

func (m *memManagers) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.list)), nil
}

func (m *memManagers) update(id string, fn func(*models.HubManager)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	x := m.get(func(x *models.HubManager) bool { return x.ManagerID == id })
	if x == nil {
		return repository.ErrNotFound
	}
	fn(x)
	return nil
}

func (m *memManagers) SetStatus(_ context.Context, id, status string) error {
	return m.update(id, func(x *models.HubManager) { x.Status = status })
}

func (m *memManagers) AssignHub(_ context.Context, id string, hub models.Hub) error {
	return m.update(id, func(x *models.HubManager) { x.HubID, x.HubName, x.District = hub.HubID, hub.Name, hub.District })
}

func (m *memManagers) TouchLogin(_ context.Context, id string, at time.Time) error {
	return m.update(id, func(x *models.HubManager) { x.LastLogin = &at })
}

type memUsers struct {
	mu    sync.Mutex
	byUID map[string]*models.User
}

func newMemUsers(us ...models.User) *memUsers {
	m := &memUsers{byUID: map[string]*models.User{}}
	for i := range us {
		u := us[i]
		m.byUID[u.UID] = &u
	}
	return m
}

func (m *memUsers) FindByUID(_ context.Context, uid string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byUID[uid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (m *memUsers) FindByRole(_ context.Context, role string) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.User{}
	for _, u := range m.byUID {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, nil
}

func (m *memUsers) Upsert(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.byUID[u.UID]; ok {
		cur.Name, cur.Email = u.Name, u.Email
		return nil
	}
	c := *u
	if c.Role == "" {
		c.Role = models.RoleBuyer
	}
	m.byUID[u.UID] = &c
	return nil
}

func (m *memUsers) with(uid string, fn func(*models.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byUID[uid]
	if !ok {
		return repository.ErrNotFound
	}
	fn(u)
	return nil
}

func (m *memUsers) SetSellerLocation(_ context.Context, uid string, loc models.SellerLocation) error {
	return m.with(uid, func(u *models.User) { u.SellerLocation = &loc })
}

func (m *memUsers) SetRole(_ context.Context, uid, role string) error {
	return m.with(uid, func(u *models.User) { u.Role = role })
}

func (m *memUsers) SetSuspended(_ context.Context, uid string, suspended bool) error {
	return m.with(uid, func(u *models.User) { u.Suspended = suspended })
}

type memApplications struct {
	mu   sync.Mutex
	list []*models.SellerApplication
}

func (m *memApplications) Create(_ context.Context, a *models.SellerApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.list {
		if e.UserID == a.UserID {
			return repository.ErrDuplicate
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	c := *a
	m.list = append(m.list, &c)
	return nil
}

func (m *memApplications) find(keep func(*models.SellerApplication) bool) (*models.SellerApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.list {
		if keep(a) {
			c := *a
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memApplications) FindByID(_ context.Context, id primitive.ObjectID) (*models.SellerApplication, error) {
	return m.find(func(a *models.SellerApplication) bool { return a.ID == id })
}

func (m *memApplications) FindByUser(_ context.Context, userID string) (*models.SellerApplication, error) {
	return m.find(func(a *models.SellerApplication) bool { return a.UserID == userID })
}

func (m *memApplications) List(_ context.Context, q models.ApplicationQuery) ([]models.SellerApplication, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.SellerApplication{}
	for i := len(m.list) - 1; i >= 0; i-- {
		if q.Status == "" || m.list[i].Status == q.Status {
			out = append(out, *m.list[i])
		}
	}
	return out, int64(len(out)), nil
}

func (m *memApplications) Review(_ context.Context, a *models.SellerApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.list {
		if e.ID == a.ID {
			c := *a
			m.list[i] = &c
			return nil
		}
	}
	return repository.ErrNotFound
}

type memNotifications struct {
	mu    sync.Mutex
	list  []*models.Notification
	fails bool
}

func (m *memNotifications) Insert(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fails {
		return context.DeadlineExceeded
	}
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	c := *n
	m.list = append(m.list, &c)
	return nil
}

func (m *memNotifications) mine(userID, role string, unreadOnly bool) []*models.Notification {
	var out []*models.Notification
	for _, n := range m.list {
		if n.UserID == userID && n.UserRole == role && (!unreadOnly || !n.Read) {
			out = append(out, n)
		}
	}
	return out
}

func (m *memNotifications) List(_ context.Context, q models.NotificationQuery) ([]models.Notification, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.mine(q.UserID, q.UserRole, q.UnreadOnly)
	out := []models.Notification{}
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, *all[i])
	}
	return out, int64(len(all)), nil
}

func (m *memNotifications) CountUnread(_ context.Context, userID, role string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.mine(userID, role, true))), nil
}

func (m *memNotifications) MarkRead(_ context.Context, id primitive.ObjectID, userID, role string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.mine(userID, role, false) {
		if n.ID == id {
			n.Read, n.ReadAt = true, &at
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memNotifications) MarkAllRead(_ context.Context, userID, role string, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, x := range m.mine(userID, role, true) {
		x.Read, x.ReadAt = true, &at
		n++
	}
	return n, nil
}

func (m *memNotifications) Delete(_ context.Context, id primitive.ObjectID, userID, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.list {
		if n.ID == id && n.UserID == userID && n.UserRole == role {
			m.list = append(m.list[:i], m.list[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// types lists notification types received by (userID, role), oldest first.
func (m *memNotifications) types(userID, role string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, n := range m.mine(userID, role, false) {
		out = append(out, n.Type)
	}
	return out
}

type memWishlists struct {
	mu    sync.Mutex
	lists map[string]*models.Wishlist
}

func newMemWishlists() *memWishlists {
	return &memWishlists{lists: map[string]*models.Wishlist{}}
}

func (m *memWishlists) Get(_ context.Context, userID string) (*models.Wishlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.lists[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *w
	c.Products = append([]primitive.ObjectID(nil), w.Products...)
	return &c, nil
}

func (m *memWishlists) Add(_ context.Context, userID string, pid primitive.ObjectID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.lists[userID]
	if !ok {
		w = &models.Wishlist{UserID: userID, CreatedAt: at}
		m.lists[userID] = w
	}
	if w.Contains(pid) {
		return repository.ErrDuplicate
	}
	w.Products = append(w.Products, pid)
	w.UpdatedAt = at
	return nil
}

func (m *memWishlists) Remove(_ context.Context, userID string, pid primitive.ObjectID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.lists[userID]
	if !ok || !w.Contains(pid) {
		return repository.ErrNotFound
	}
	kept := w.Products[:0]
	for _, p := range w.Products {
		if p != pid {
			kept = append(kept, p)
		}
	}
	w.Products = kept
	w.UpdatedAt = at
	return nil
}

func (m *memWishlists) Clear(_ context.Context, userID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.lists[userID]; ok {
		w.Products = nil
		w.UpdatedAt = at
	}
	return nil
}

type memCarts struct {
	mu    sync.Mutex
	items []*models.CartItem
}

func (m *memCarts) line(userID string, pid primitive.ObjectID) (int, *models.CartItem) {
	for i, it := range m.items {
		if it.UserID == userID && it.ProductID == pid {
			return i, it
		}
	}
	return -1, nil
}

func (m *memCarts) Add(_ context.Context, item *models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, it := m.line(item.UserID, item.ProductID); it != nil {
		it.Quantity += item.Quantity
		it.Variant = item.Variant
		return nil
	}
	c := *item
	m.items = append(m.items, &c)
	return nil
}

func (m *memCarts) List(_ context.Context, userID string) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.CartItem{}
	for _, it := range m.items {
		if it.UserID == userID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (m *memCarts) SetQuantity(_ context.Context, userID string, pid primitive.ObjectID, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, it := m.line(userID, pid)
	if it == nil {
		return repository.ErrNotFound
	}
	it.Quantity = qty
	return nil
}

func (m *memCarts) Remove(_ context.Context, userID string, pid primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, _ := m.line(userID, pid)
	if i < 0 {
		return repository.ErrNotFound
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

func (m *memCarts) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	for _, it := range m.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	m.items = kept
	return nil
}

type memBlacklist struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func (m *memBlacklist) Add(_ context.Context, token string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		m.tokens = map[string]time.Time{}
	}
	m.tokens[token] = exp
	return nil
}

func (m *memBlacklist) Contains(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tokens[token]
	return ok, nil
}

type sentMail struct {
	mu   sync.Mutex
	sent []mailer.PickupOTP
	err  error
}

func (s *sentMail) SendPickupOTP(_ context.Context, p mailer.PickupOTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, p)
	return s.err
}

func (s *sentMail) last() mailer.PickupOTP {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent[len(s.sent)-1]
}
