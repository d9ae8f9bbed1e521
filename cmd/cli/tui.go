package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nazeru/contractforge-go/internal/checkout"
	"github.com/nazeru/contractforge-go/internal/inventory"
	"github.com/nazeru/contractforge-go/internal/user"
)

type catalogLoaded struct {
	products []inventory.Product
	users    []user.User
	err      error
}

type previewLoaded struct {
	preview checkout.Preview
	err     error
}

type model struct {
	api *api

	products   []inventory.Product
	users      []user.User
	selProduct int
	selUser    int
	focusUsers bool
	busy       bool
	status     string
	preview    *checkout.Preview
}

func initialModel(a *api) model {
	return model{api: a, busy: true, status: "Loading catalog..."}
}

func (m model) Init() tea.Cmd {
	return loadCatalogCmd(m.api)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "left", "right":
			m.focusUsers = !m.focusUsers
		case "up":
			if m.focusUsers {
				m.selUser = max(m.selUser-1, 0)
			} else {
				m.selProduct = max(m.selProduct-1, 0)
			}
		case "down":
			if m.focusUsers {
				m.selUser = min(m.selUser+1, max(len(m.users)-1, 0))
			} else {
				m.selProduct = min(m.selProduct+1, max(len(m.products)-1, 0))
			}
		case "r":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.status = "Reloading catalog..."
			return m, loadCatalogCmd(m.api)
		case "enter":
			if m.busy || len(m.products) == 0 || len(m.users) == 0 {
				return m, nil
			}
			m.busy = true
			m.status = "Pricing..."
			return m, previewCmdFor(m.api, m.products[m.selProduct].ID, m.users[m.selUser].ID)
		}
	case catalogLoaded:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Catalog failed: %v", msg.err)
			return m, nil
		}
		m.products, m.users = msg.products, msg.users
		m.selProduct = min(m.selProduct, max(len(m.products)-1, 0))
		m.selUser = min(m.selUser, max(len(m.users)-1, 0))
		m.status = fmt.Sprintf("%d products, %d users", len(m.products), len(m.users))
	case previewLoaded:
		m.busy = false
		if msg.err != nil {
			m.preview = nil
			m.status = fmt.Sprintf("Preview failed: %v", msg.err)
			return m, nil
		}
		p := msg.preview
		m.preview = &p
		m.status = "Preview ready"
	}
	return m, nil
}

func (m model) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "ContractForge checkout preview")
	fmt.Fprintln(b, "")

	fmt.Fprintln(b, heading("Products", !m.focusUsers))
	for i, p := range m.products {
		fmt.Fprintf(b, " %s %-10s %-22s %8.2f  (stock %d)\n", marker(i == m.selProduct), p.ID, p.Name, p.Price, p.Stock)
	}
	fmt.Fprintln(b, "")
	fmt.Fprintln(b, heading("Users", m.focusUsers))
	for i, u := range m.users {
		fmt.Fprintf(b, " %s %-10s %-22s %s\n", marker(i == m.selUser), u.ID, u.Name, u.LoyaltyTier)
	}

	if m.preview != nil {
		q := m.preview.Pricing
		fmt.Fprintln(b, "")
		fmt.Fprintf(b, "%s for %s (%s)\n", m.preview.Product.Name, m.preview.User.Name, m.preview.User.LoyaltyTier)
		fmt.Fprintf(b, "  base     %8.2f %s\n", q.BasePrice, q.Currency)
		fmt.Fprintf(b, "  discount %8.2f (rate %.2f)\n", q.Discount, q.DiscountRate)
		fmt.Fprintf(b, "  final    %8.2f %s\n", q.FinalPrice, q.Currency)
	}

	fmt.Fprintln(b, "")
	fmt.Fprintf(b, "Status: %s\n", m.status)
	fmt.Fprintln(b, "\nControls: up/down select, tab switch list, enter preview, r reload, q quit")
	return b.String()
}

func heading(s string, focused bool) string {
	if focused {
		return s + " *"
	}
	return s
}

func marker(selected bool) string {
	if selected {
		return ">"
	}
	return " "
}

func loadCatalogCmd(a *api) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		products, err := a.Products(ctx)
		if err != nil {
			return catalogLoaded{err: err}
		}
		users, err := a.Users(ctx)
		if err != nil {
			return catalogLoaded{err: err}
		}
		return catalogLoaded{products: products, users: users}
	}
}

func previewCmdFor(a *api, productID, userID string) tea.Cmd {
	return func() tea.Msg {
		p, err := a.Preview(context.Background(), productID, userID)
		return previewLoaded{preview: p, err: err}
	}
}
