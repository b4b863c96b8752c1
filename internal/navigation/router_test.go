package navigation

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func newAuthedRouter(t *testing.T) *Router {
	t.Helper()
	r := NewRouter(zerolog.Nop())
	r.SetAuthenticated(true)
	return r
}

func TestStartsOnLogin(t *testing.T) {
	r := NewRouter(zerolog.Nop())
	if r.Current() != ScreenLogin {
		t.Fatalf("current = %s", r.Current())
	}
	if err := r.Navigate(ScreenRegiaoList, nil); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	r.GoBack()
	if r.Current() != ScreenLogin {
		t.Fatal("GoBack while logged out must stay on login")
	}
}

func TestNavigateWithParams(t *testing.T) {
	r := newAuthedRouter(t)
	if r.Current() != ScreenMenu {
		t.Fatalf("current = %s", r.Current())
	}
	if err := r.Navigate(ScreenSensorList, nil); err != nil {
		t.Fatal(err)
	}
	if err := r.Navigate(ScreenSensorForm, Params{"sensor": 7}); err != nil {
		t.Fatal(err)
	}
	if r.Params()["sensor"] != 7 {
		t.Fatalf("params = %v", r.Params())
	}
}

func TestGoBackAlwaysReturnsToMenu(t *testing.T) {
	r := newAuthedRouter(t)
	_ = r.Navigate(ScreenRegiaoList, nil)
	_ = r.Navigate(ScreenRegiaoForm, Params{"regiao": 1})

	r.GoBack()
	if r.Current() != ScreenMenu {
		t.Fatalf("current = %s", r.Current())
	}
	if len(r.Params()) != 0 {
		t.Fatal("params should be cleared")
	}
}

func TestInvalidTransition(t *testing.T) {
	r := newAuthedRouter(t)
	if err := r.Navigate(ScreenRegiaoForm, nil); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("menu → form should be rejected, got %v", err)
	}
	_ = r.Navigate(ScreenRegiaoList, nil)
	if err := r.Navigate(ScreenSensorForm, nil); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("regiao list → sensor form should be rejected, got %v", err)
	}
	if r.Current() != ScreenRegiaoList {
		t.Fatal("rejected transition must not change screen")
	}
}

func TestDisabledScreens(t *testing.T) {
	r := newAuthedRouter(t)
	for _, s := range []Screen{ScreenLeituraList, ScreenAlertaList, ScreenUsuarioList} {
		err := r.Navigate(s, nil)
		if !errors.Is(err, ErrScreenDisabled) {
			t.Fatalf("%s: expected ErrScreenDisabled, got %v", s, err)
		}
		if err.Error() != "Esta funcionalidade será implementada em breve." {
			t.Fatalf("message = %q", err.Error())
		}
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	r := newAuthedRouter(t)
	_ = r.Navigate(ScreenDashboard, nil)
	_ = r.Navigate(ScreenLocais, nil)
	r.SetAuthenticated(false)
	if r.Current() != ScreenLogin {
		t.Fatalf("current = %s", r.Current())
	}
}

func TestMenuItems(t *testing.T) {
	enabled := 0
	for _, item := range MenuItems() {
		if item.Enabled {
			enabled++
		}
	}
	if enabled != 4 {
		t.Fatalf("enabled = %d", enabled)
	}
}
