package validation

import (
	"fmt"

	"github.com/caesium-lab/evacenv/pkg/environment"
	"github.com/caesium-lab/evacenv/pkg/shape"
)

// ValidateEnvironment checks a loaded environment for problems the decoder
// accepts but a simulation would trip over. Only non-positive domain sizes
// make the report invalid; everything else is a warning or a note.
func ValidateEnvironment(env *environment.Environment) *Report {
	r := NewReport()

	for _, d := range env.Domains() {
		validateDomainSize(d, r)
		validateObstacles(d, r)
		validateCoverage(d, r)
		validateAccesses(env, d, r)
	}
	validateGatewayAccesses(env, r)
	validateReachability(env, r)

	r.AddInfo(Result{
		Level: LevelStructural,
		Message: fmt.Sprintf("%d domains, %d gateways, %d exits",
			len(env.DomainIDs()), len(env.GatewayIDs()), len(env.ExitGateways())),
	})
	return r
}

// DomainPath names a domain in results by id, since ids are what callers
// look domains up by.
func DomainPath(id int32) string {
	return fmt.Sprintf("domains[id=%d]", id)
}

func validateDomainSize(d *environment.Domain, r *Report) {
	if d.Width() <= 0 {
		r.AddError(Result{
			Level:       LevelStructural,
			Message:     fmt.Sprintf("domain %d: width must be > 0", d.ID()),
			Path:        DomainPath(d.ID()) + ".width",
			ActualValue: d.Width(),
			Expected:    "> 0",
		})
	}
	if d.Height() <= 0 {
		r.AddError(Result{
			Level:       LevelStructural,
			Message:     fmt.Sprintf("domain %d: height must be > 0", d.ID()),
			Path:        DomainPath(d.ID()) + ".height",
			ActualValue: d.Height(),
			Expected:    "> 0",
		})
	}
}

func validateObstacles(d *environment.Domain, r *Report) {
	floor := d.Bounds()
	for i, o := range d.Obstacles() {
		if o.Shape.Intersects(0, 0, d.Width(), d.Height()) {
			continue
		}
		label := o.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		center := shape.Outline(o.Shape).Centroid()
		gap := floor.ClosestPoint(center).Distance(center)
		r.AddWarning(Result{
			Level:       LevelSpatial,
			Message:     fmt.Sprintf("domain %d: obstacle %s lies entirely outside the domain, its center %.2f from the nearest edge", d.ID(), label, gap),
			Path:        fmt.Sprintf("%s.obstacles[%d]", DomainPath(d.ID()), i),
			ActualValue: center,
			Expected:    fmt.Sprintf("center within [0, %g] x [0, %g]", d.Width(), d.Height()),
			Suggestions: []string{"Move the obstacle inside the domain or remove it"},
		})
	}
}

// CrowdedCoverage is the share of a domain's floor covered by obstacles above
// which validation notes the domain as crowded.
const CrowdedCoverage = 0.5

func validateCoverage(d *environment.Domain, r *Report) {
	bounds := d.Bounds()
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		return
	}
	covered := 0.0
	for _, o := range d.Obstacles() {
		if !o.Shape.Bounds().Intersects(bounds) {
			continue
		}
		covered += shape.AreaWithin(o.Shape, 0, 0, bounds.Width(), bounds.Height())
	}
	// Overlapping obstacles are counted twice.
	if share := covered / (bounds.Width() * bounds.Height()); share > CrowdedCoverage {
		r.AddInfo(Result{
			Level:       LevelSpatial,
			Message:     fmt.Sprintf("domain %d: obstacles cover %.0f%% of the floor", d.ID(), 100*min(share, 1)),
			Path:        DomainPath(d.ID()) + ".obstacles",
			ActualValue: share,
			Expected:    fmt.Sprintf("<= %.2f", CrowdedCoverage),
		})
	}
}

func validateAccesses(env *environment.Environment, d *environment.Domain, r *Report) {
	for i, a := range d.Accesses() {
		path := fmt.Sprintf("%s.accesses[%d]", DomainPath(d.ID()), i)
		if !a.Shape.Intersects(0, 0, d.Width(), d.Height()) {
			r.AddWarning(Result{
				Level:   LevelSpatial,
				Message: fmt.Sprintf("domain %d: access %d lies entirely outside the domain", d.ID(), a.ID),
				Path:    path,
			})
		}
		g, ok := env.Gateway(a.ID)
		if !ok || !g.Connects(d.ID()) {
			r.AddWarning(Result{
				Level:       LevelStructural,
				Message:     fmt.Sprintf("domain %d: access %d has no gateway %d touching this domain", d.ID(), a.ID, a.ID),
				Path:        path + ".id",
				ActualValue: a.ID,
				Suggestions: []string{fmt.Sprintf("Add a gateway with id %d connecting domain %d", a.ID, d.ID())},
			})
		}
	}
}

func validateGatewayAccesses(env *environment.Environment, r *Report) {
	for _, g := range env.Gateways() {
		found := false
		for _, id := range []int32{g.Domain1, g.Domain2} {
			d, ok := env.Domain(id)
			if !ok {
				continue
			}
			if _, ok := d.Access(g.ID); ok {
				found = true
				break
			}
		}
		if !found {
			r.AddInfo(Result{
				Level:   LevelStructural,
				Message: fmt.Sprintf("gateway %d has no access in either endpoint domain", g.ID),
				Path:    fmt.Sprintf("gateways[id=%d]", g.ID),
			})
		}
	}
}

func validateReachability(env *environment.Environment, r *Report) {
	if len(env.ExitGateways()) == 0 && len(env.DomainIDs()) > 0 {
		r.AddWarning(Result{
			Level:       LevelStructural,
			Message:     "no gateway leads to the exterior",
			Path:        "gateways",
			Suggestions: []string{"Add a gateway with domain1 or domain2 set to 0"},
		})
	}
	for _, id := range env.Unreachable() {
		r.AddWarning(Result{
			Level:   LevelStructural,
			Message: fmt.Sprintf("domain %d cannot reach the exterior through any gateway", id),
			Path:    DomainPath(id),
		})
	}
}
