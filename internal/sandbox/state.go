// Package sandbox is an in-memory stand-in for the production backend,
// used by cmd/khata-sandbox and by tests. It speaks the same wire dialect
// as the real API, FastAPI-shaped errors included, but keeps everything in
// process memory and loses it on exit.
package sandbox

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// user is a sandbox account. One user owns exactly one shop.
type user struct {
	ID           string
	Email        string
	PasswordHash []byte
	ShopID       string
}

// shop holds a shop's name and PAN.
type shop struct {
	ID   string
	Name string
	PAN  string
}

// storedInvoice keeps the confirmed invoice plus the method summary the
// list endpoint serves.
type storedInvoice struct {
	Invoice entity.Invoice
	Method  entity.PaymentMethod
}

// state is the whole sandbox dataset, guarded by one mutex. Every map is
// keyed by id; per-shop slices keep insertion order for stable listings.
type state struct {
	mu sync.RWMutex

	users        map[string]*user // by id
	usersByEmail map[string]*user
	shops        map[string]*shop

	services  map[string][]*entity.Service  // by shop id, insertion order
	customers map[string][]*entity.Customer // by shop id
	invoices  map[string][]*storedInvoice   // by shop id, insertion order
}

func newState() *state {
	return &state{
		users:        make(map[string]*user),
		usersByEmail: make(map[string]*user),
		shops:        make(map[string]*shop),
		services:     make(map[string][]*entity.Service),
		customers:    make(map[string][]*entity.Customer),
		invoices:     make(map[string][]*storedInvoice),
	}
}

// defaultServices is the price list every new shop starts with, in paise.
var defaultServices = []entity.Service{
	{Name: "Haircut", PricePaise: 15000, Active: true},
	{Name: "Beard", PricePaise: 8000, Active: true},
	{Name: "Trimming", PricePaise: 6000, Active: true},
	{Name: "Facial", PricePaise: 25000, Active: true},
	{Name: "Haircut + Beard", PricePaise: 20000, Active: true},
}

// createAccount registers a user with a fresh shop and seeds the default
// price list. Caller holds no lock. Returns nil when the email is taken.
func (s *state) createAccount(email string, passwordHash []byte, shopName, pan string) *user {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, taken := s.usersByEmail[key]; taken {
		return nil
	}

	sh := &shop{ID: uuid.NewString(), Name: shopName, PAN: pan}
	u := &user{ID: uuid.NewString(), Email: email, PasswordHash: passwordHash, ShopID: sh.ID}
	s.shops[sh.ID] = sh
	s.users[u.ID] = u
	s.usersByEmail[key] = u

	for _, tpl := range defaultServices {
		svc := tpl
		svc.ID = uuid.NewString()
		s.services[sh.ID] = append(s.services[sh.ID], &svc)
	}
	return u
}

func (s *state) userByEmail(email string) *user {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersByEmail[strings.ToLower(email)]
}

func (s *state) userByID(id string) *user {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[id]
}

func (s *state) shopByID(id string) *shop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shops[id]
}

// ── services ──────────────────────────────────────────────────────────────────

func (s *state) listServices(shopID string) []entity.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Service, 0, len(s.services[shopID]))
	for _, svc := range s.services[shopID] {
		out = append(out, *svc)
	}
	return out
}

func (s *state) createService(shopID, name string, pricePaise int64) entity.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc := &entity.Service{ID: uuid.NewString(), Name: name, PricePaise: pricePaise, Active: true}
	s.services[shopID] = append(s.services[shopID], svc)
	return *svc
}

func (s *state) updateService(shopID, id string, name *string, pricePaise *int64, active *bool) (entity.Service, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, svc := range s.services[shopID] {
		if svc.ID != id {
			continue
		}
		if name != nil {
			svc.Name = *name
		}
		if pricePaise != nil {
			svc.PricePaise = *pricePaise
		}
		if active != nil {
			svc.Active = *active
		}
		return *svc, true
	}
	return entity.Service{}, false
}

func (s *state) serviceByID(shopID, id string) (entity.Service, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, svc := range s.services[shopID] {
		if svc.ID == id {
			return *svc, true
		}
	}
	return entity.Service{}, false
}

// ── customers ─────────────────────────────────────────────────────────────────

func (s *state) listCustomers(shopID, query string) []entity.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]entity.Customer, 0, len(s.customers[shopID]))
	for _, c := range s.customers[shopID] {
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(c.Phone, q) {
			continue
		}
		out = append(out, *c)
	}
	return out
}

// createCustomer returns false when the phone is already registered in the
// shop. Empty phones never collide.
func (s *state) createCustomer(shopID, name, phone, notes string) (entity.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if phone != "" {
		for _, c := range s.customers[shopID] {
			if c.Phone == phone {
				return entity.Customer{}, false
			}
		}
	}
	c := &entity.Customer{ID: uuid.NewString(), Name: name, Phone: phone, Notes: notes}
	s.customers[shopID] = append(s.customers[shopID], c)
	return *c, true
}

func (s *state) customerByID(shopID, id string) (entity.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers[shopID] {
		if c.ID == id {
			return *c, true
		}
	}
	return entity.Customer{}, false
}

func (s *state) updateCustomer(shopID, id string, name, phone, notes *string) (entity.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.customers[shopID] {
		if c.ID != id {
			continue
		}
		if name != nil {
			c.Name = *name
		}
		if phone != nil {
			c.Phone = *phone
		}
		if notes != nil {
			c.Notes = *notes
		}
		return *c, true
	}
	return entity.Customer{}, false
}

// ── invoices ──────────────────────────────────────────────────────────────────

func (s *state) addInvoice(shopID string, inv entity.Invoice, method entity.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[shopID] = append(s.invoices[shopID], &storedInvoice{Invoice: inv, Method: method})
}

func (s *state) invoiceByID(shopID, id string) (entity.Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, si := range s.invoices[shopID] {
		if si.Invoice.ID == id {
			return si.Invoice, true
		}
	}
	return entity.Invoice{}, false
}

// listInvoices filters by customer and half-open [start, end) range, newest
// first.
func (s *state) listInvoices(shopID, customerID string, start, end time.Time) []entity.InvoiceSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.InvoiceSummary, 0, len(s.invoices[shopID]))
	for _, si := range s.invoices[shopID] {
		inv := si.Invoice
		if customerID != "" && inv.CustomerID != customerID {
			continue
		}
		if !start.IsZero() && inv.IssuedAt.Before(start) {
			continue
		}
		if !end.IsZero() && !inv.IssuedAt.Before(end) {
			continue
		}
		out = append(out, entity.InvoiceSummary{
			ID:            inv.ID,
			IssuedAt:      inv.IssuedAt,
			CustomerName:  inv.CustomerName,
			SubtotalPaise: inv.SubtotalPaise,
			DiscountPaise: inv.DiscountPaise,
			TotalPaise:    inv.TotalPaise,
			PaymentMethod: si.Method,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return out
}

// snapshotInvoices copies every stored invoice of a shop for the report
// aggregations.
func (s *state) snapshotInvoices(shopID string) []storedInvoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]storedInvoice, 0, len(s.invoices[shopID]))
	for _, si := range s.invoices[shopID] {
		out = append(out, *si)
	}
	return out
}
