package navigation

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

type Screen string

const (
	Onboarding     Screen = "Onboarding"
	Login          Screen = "Login"
	Register       Screen = "Register"
	MainTabs       Screen = "MainTabs"
	ProductDetails Screen = "ProductDetails"
)

type Tab string

const (
	Home     Tab = "Home"
	Offers   Tab = "Offers"
	Wishlist Tab = "Wishlist"
	Profile  Tab = "Profile"
)

type Branch string

const (
	BranchAuth Branch = "auth"
	BranchMain Branch = "main"
)

var (
	ErrUnknownScreen = errors.New("unknown screen")
	ErrUnavailable   = errors.New("screen not available")
	ErrMissingParam  = errors.New("missing route parameter")
	ErrUnknownTab    = errors.New("unknown tab")
)

var (
	authScreens = []Screen{Onboarding, Login, Register}
	mainScreens = []Screen{MainTabs, ProductDetails}
	tabs        = []Tab{Home, Offers, Wishlist, Profile}
)

type Route struct {
	Screen    Screen `json:"screen"`
	ProductID int    `json:"product_id,omitempty"`
}

type State struct {
	Branch  Branch   `json:"branch"`
	Current Route    `json:"current"`
	Stack   []Route  `json:"stack"`
	Tab     Tab      `json:"tab,omitempty"`
	Screens []Screen `json:"screens"`
}

// AuthState is the single flag the root branch depends on.
type AuthState interface {
	IsAuthenticated() bool
}

// Navigator keeps one stack per app instance. The branch is derived from
// AuthState on every call; when it flips, the stack resets to the new
// branch's initial route.
type Navigator struct {
	auth AuthState

	mu     sync.Mutex
	branch Branch
	stack  []Route
	tab    Tab
}

func New(auth AuthState) *Navigator {
	n := &Navigator{auth: auth}
	n.mu.Lock()
	n.syncLocked()
	n.mu.Unlock()
	return n
}

func branchFor(authenticated bool) Branch {
	if authenticated {
		return BranchMain
	}
	return BranchAuth
}

func screensOf(b Branch) []Screen {
	if b == BranchMain {
		return mainScreens
	}
	return authScreens
}

func initialRoute(b Branch) Route {
	if b == BranchMain {
		return Route{Screen: MainTabs}
	}
	return Route{Screen: Onboarding}
}

func (n *Navigator) syncLocked() {
	b := branchFor(n.auth.IsAuthenticated())
	if b == n.branch && len(n.stack) > 0 {
		return
	}
	n.branch = b
	n.stack = []Route{initialRoute(b)}
	n.tab = ""
	if b == BranchMain {
		n.tab = Home
	}
}

func (n *Navigator) validateLocked(r Route) error {
	if !slices.Contains(authScreens, r.Screen) && !slices.Contains(mainScreens, r.Screen) {
		return fmt.Errorf("%q: %w", r.Screen, ErrUnknownScreen)
	}
	if !slices.Contains(screensOf(n.branch), r.Screen) {
		return fmt.Errorf("%q in %s branch: %w", r.Screen, n.branch, ErrUnavailable)
	}
	if r.Screen == ProductDetails && r.ProductID <= 0 {
		return fmt.Errorf("%q needs a product id: %w", r.Screen, ErrMissingParam)
	}
	return nil
}

func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.syncLocked()
	return n.stateLocked()
}

// Navigate goes back to r if an identical route is already on the stack,
// otherwise pushes it.
func (n *Navigator) Navigate(r Route) (State, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.syncLocked()

	if err := n.validateLocked(r); err != nil {
		return n.stateLocked(), err
	}
	if i := slices.Index(n.stack, r); i >= 0 {
		n.stack = n.stack[:i+1]
		return n.stateLocked(), nil
	}
	n.stack = append(n.stack, r)
	return n.stateLocked(), nil
}

// Replace swaps the top of the stack for r.
func (n *Navigator) Replace(r Route) (State, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.syncLocked()

	if err := n.validateLocked(r); err != nil {
		return n.stateLocked(), err
	}
	n.stack[len(n.stack)-1] = r
	return n.stateLocked(), nil
}

// Back pops one route; it reports false at the root.
func (n *Navigator) Back() (State, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.syncLocked()

	if len(n.stack) <= 1 {
		return n.stateLocked(), false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return n.stateLocked(), true
}

// SelectTab switches the bottom tab and returns to MainTabs.
func (n *Navigator) SelectTab(t Tab) (State, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.syncLocked()

	if !slices.Contains(tabs, t) {
		return n.stateLocked(), fmt.Errorf("%q: %w", t, ErrUnknownTab)
	}
	if n.branch != BranchMain {
		return n.stateLocked(), fmt.Errorf("tab %q in %s branch: %w", t, n.branch, ErrUnavailable)
	}
	n.stack = n.stack[:1]
	n.tab = t
	return n.stateLocked(), nil
}

func (n *Navigator) stateLocked() State {
	stack := make([]Route, len(n.stack))
	copy(stack, n.stack)
	return State{
		Branch:  n.branch,
		Current: stack[len(stack)-1],
		Stack:   stack,
		Tab:     n.tab,
		Screens: slices.Clone(screensOf(n.branch)),
	}
}
