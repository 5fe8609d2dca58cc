package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/caesium-lab/evacenv/pkg/environment"
	"github.com/caesium-lab/evacenv/pkg/geo"
	"github.com/caesium-lab/evacenv/pkg/shape"
)

func mustRect(t *testing.T, x, y, w, h float64) shape.Shape {
	t.Helper()
	r, err := shape.NewRectangle(geo.Pt(x, y), w, h)
	if err != nil {
		t.Fatalf("rectangle: %v", err)
	}
	return r
}

// validEnv is two 10x10 rooms in a row: exterior -1- room 1 -2- room 2,
// with an access for every gateway.
func validEnv(t *testing.T) *environment.Environment {
	t.Helper()
	env := environment.New()

	d1 := environment.NewDomain(1, 10, 10)
	if err := d1.AddAccess(environment.Access{ID: 1, Shape: mustRect(t, 0, 4, 1, 2)}); err != nil {
		t.Fatal(err)
	}
	if err := d1.AddAccess(environment.Access{ID: 2, Shape: mustRect(t, 9, 4, 1, 2)}); err != nil {
		t.Fatal(err)
	}
	if err := d1.AddObstacle(environment.Obstacle{Name: "desk", Shape: mustRect(t, 3, 3, 2, 1)}); err != nil {
		t.Fatal(err)
	}

	d2 := environment.NewDomain(2, 10, 10)
	if err := d2.AddAccess(environment.Access{ID: 2, Shape: mustRect(t, 0, 4, 1, 2)}); err != nil {
		t.Fatal(err)
	}

	for _, d := range []*environment.Domain{d1, d2} {
		if err := env.AddDomain(d); err != nil {
			t.Fatalf("add domain: %v", err)
		}
	}
	for _, g := range []environment.Gateway{
		{ID: 1, Domain1: 0, Domain2: 1},
		{ID: 2, Domain1: 1, Domain2: 2},
	} {
		if err := env.AddGateway(g); err != nil {
			t.Fatalf("add gateway: %v", err)
		}
	}
	return env
}

func TestValidateEnvironmentValid(t *testing.T) {
	r := ValidateEnvironment(validEnv(t))
	if !r.Valid {
		t.Errorf("expected valid report, got errors: %v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", r.Warnings)
	}
	if len(r.Info) != 1 || r.Info[0].Message != "2 domains, 2 gateways, 1 exits" {
		t.Errorf("unexpected info: %v", r.Info)
	}
}

func TestValidateEnvironmentNonPositiveSize(t *testing.T) {
	env := validEnv(t)
	if err := env.AddDomain(environment.NewDomain(3, 0, -2)); err != nil {
		t.Fatal(err)
	}
	r := ValidateEnvironment(env)
	if r.Valid {
		t.Error("expected invalid report for a zero-width domain")
	}
	assertHasResult(t, r.Errors, "domains[id=3].width")
	assertHasResult(t, r.Errors, "domains[id=3].height")
}

func TestValidateEnvironmentShapesOutsideDomain(t *testing.T) {
	env := validEnv(t)
	d, _ := env.Domain(2)
	if err := d.AddObstacle(environment.Obstacle{Shape: mustRect(t, 20, 20, 1, 1)}); err != nil {
		t.Fatal(err)
	}
	if err := d.AddAccess(environment.Access{ID: 9, Shape: mustRect(t, -5, 0, 2, 2)}); err != nil {
		t.Fatal(err)
	}

	r := ValidateEnvironment(env)
	if !r.Valid {
		t.Error("shapes outside a domain should only warn")
	}
	assertHasResult(t, r.Warnings, "domains[id=2].obstacles[0]")
	for _, w := range r.Warnings {
		if w.Path != "domains[id=2].obstacles[0]" {
			continue
		}
		center, ok := w.ActualValue.(geo.Point2D)
		if !ok || math.Abs(center.X-20.5) > 1e-9 || math.Abs(center.Y-20.5) > 1e-9 {
			t.Errorf("expected obstacle center (20.5, 20.5), got %v", w.ActualValue)
		}
		if !strings.Contains(w.Message, "14.85 from the nearest edge") {
			t.Errorf("expected distance to the domain in %q", w.Message)
		}
	}
	assertHasResult(t, r.Warnings, "domains[id=2].accesses[1]")
	assertHasResult(t, r.Warnings, "domains[id=2].accesses[1].id")
}

func TestValidateEnvironmentTouchingShapeIsInside(t *testing.T) {
	env := validEnv(t)
	d, _ := env.Domain(2)
	if err := d.AddObstacle(environment.Obstacle{Shape: mustRect(t, 10, 10, 1, 1)}); err != nil {
		t.Fatal(err)
	}

	r := ValidateEnvironment(env)
	for _, w := range r.Warnings {
		if strings.HasPrefix(w.Path, "domains[id=2].obstacles") {
			t.Errorf("obstacle touching the corner should not warn: %v", w)
		}
	}
}

func TestValidateEnvironmentGatewayWithoutAccess(t *testing.T) {
	env := validEnv(t)
	if err := env.AddGateway(environment.Gateway{ID: 5, Domain1: 2, Domain2: 0}); err != nil {
		t.Fatal(err)
	}
	r := ValidateEnvironment(env)
	assertHasResult(t, r.Info, "gateways[id=5]")
}

func TestValidateEnvironmentUnreachable(t *testing.T) {
	env := validEnv(t)
	if err := env.AddDomain(environment.NewDomain(7, 4, 4)); err != nil {
		t.Fatal(err)
	}
	r := ValidateEnvironment(env)
	assertHasResult(t, r.Warnings, "domains[id=7]")
}

func TestValidateEnvironmentNoExit(t *testing.T) {
	env := environment.New()
	if err := env.AddDomain(environment.NewDomain(1, 4, 4)); err != nil {
		t.Fatal(err)
	}
	r := ValidateEnvironment(env)
	assertHasResult(t, r.Warnings, "gateways")
	assertHasResult(t, r.Warnings, "domains[id=1]")
}

func assertHasResult(t *testing.T, results []Result, path string) {
	t.Helper()
	for _, res := range results {
		if res.Path == path {
			return
		}
	}
	t.Errorf("expected result with path %q, got: %v", path, results)
}

func TestValidateEnvironmentCrowdedDomain(t *testing.T) {
	env := validEnv(t)
	d, _ := env.Domain(2)
	if err := d.AddObstacle(environment.Obstacle{Name: "stage", Shape: mustRect(t, 0, 0, 8, 8)}); err != nil {
		t.Fatal(err)
	}

	r := ValidateEnvironment(env)
	assertHasResult(t, r.Info, "domains[id=2].obstacles")
	for _, i := range r.Info {
		if i.Path == "domains[id=1].obstacles" {
			t.Errorf("domain 1 is sparsely furnished: %v", i)
		}
	}
}
