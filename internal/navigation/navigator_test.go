package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flag struct{ on bool }

func (f *flag) IsAuthenticated() bool { return f.on }

func TestNavigator_RootFollowsAuthFlag(t *testing.T) {
	auth := &flag{}
	n := New(auth)

	st := n.State()
	assert.Equal(t, BranchAuth, st.Branch)
	assert.Equal(t, Onboarding, st.Current.Screen)

	auth.on = true
	st = n.State()
	assert.Equal(t, BranchMain, st.Branch)
	assert.Equal(t, MainTabs, st.Current.Screen)
	assert.Equal(t, Home, st.Tab)

	auth.on = false
	st = n.State()
	assert.Equal(t, Onboarding, st.Current.Screen)
	assert.Len(t, st.Stack, 1)
}

func TestNavigator_AuthFlow(t *testing.T) {
	n := New(&flag{})

	st, err := n.Navigate(Route{Screen: Login})
	require.NoError(t, err)
	assert.Equal(t, Login, st.Current.Screen)

	st, err = n.Navigate(Route{Screen: Register})
	require.NoError(t, err)
	assert.Len(t, st.Stack, 3)

	st, err = n.Navigate(Route{Screen: Login})
	require.NoError(t, err)
	assert.Len(t, st.Stack, 2, "navigating to a route already on the stack pops back to it")

	st, ok := n.Back()
	assert.True(t, ok)
	assert.Equal(t, Onboarding, st.Current.Screen)

	_, ok = n.Back()
	assert.False(t, ok)
}

func TestNavigator_MainScreensUnavailableWhenLoggedOut(t *testing.T) {
	n := New(&flag{})

	_, err := n.Navigate(Route{Screen: ProductDetails, ProductID: 1})
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = n.SelectTab(Profile)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNavigator_ProductDetails(t *testing.T) {
	n := New(&flag{on: true})

	_, err := n.Navigate(Route{Screen: ProductDetails})
	assert.ErrorIs(t, err, ErrMissingParam)

	st, err := n.Navigate(Route{Screen: ProductDetails, ProductID: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, st.Current.ProductID)

	st, err = n.Navigate(Route{Screen: ProductDetails, ProductID: 6})
	require.NoError(t, err)
	assert.Len(t, st.Stack, 3)

	st, err = n.SelectTab(Wishlist)
	require.NoError(t, err)
	assert.Equal(t, Wishlist, st.Tab)
	assert.Equal(t, MainTabs, st.Current.Screen)
	assert.Len(t, st.Stack, 1)
}

func TestNavigator_Errors(t *testing.T) {
	n := New(&flag{on: true})

	_, err := n.Navigate(Route{Screen: "Checkout"})
	assert.ErrorIs(t, err, ErrUnknownScreen)

	_, err = n.Navigate(Route{Screen: Login})
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = n.SelectTab("Cart")
	assert.ErrorIs(t, err, ErrUnknownTab)
}

func TestNavigator_Replace(t *testing.T) {
	n := New(&flag{})
	_, err := n.Navigate(Route{Screen: Register})
	require.NoError(t, err)

	st, err := n.Replace(Route{Screen: Login})
	require.NoError(t, err)
	assert.Equal(t, []Route{{Screen: Onboarding}, {Screen: Login}}, st.Stack)
}
