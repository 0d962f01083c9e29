package check

// SetToggles forces the toggle state for tests, bypassing the environment.
// Production code resolves the toggles exactly once and never writes them.
func SetToggles(shapeOn, assertOn bool) {
	toggleOnce.Do(func() {})
	shapeChecks = shapeOn
	assertions = assertOn
}
