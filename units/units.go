// Package units carries the conversion constants used at the wire boundary
// of the force-field core (spec.md §6). User-facing definition calls take
// kcal/mol, Å and degrees; the topology caches and the force kernel work in
// Da, Å, radians and Da·Å²/ps² throughout. Grounded on gochem's
// conversion.go.
package units

// Deg2Rad and Rad2Deg convert between degrees and radians.
const (
	Deg2Rad = 0.017453292519943295 // math.Pi / 180
	Rad2Deg = 1 / Deg2Rad
)

// KcalToInternal converts kcal/mol to the internal energy unit, Da·Å²/ps².
// The conversion factor is exact, per spec.md §6.
const KcalToInternal = 418.4

// InternalToKcal is the inverse of KcalToInternal.
const InternalToKcal = 1.0 / KcalToInternal

// CoulombConstant is Coulomb's constant expressed so that
// CoulombConstant * q1 * q2 / d (d in Å, q in elementary charges) yields an
// energy in internal units directly. Grounded on the original DuMM source's
// CoulombFac = 332.06371 * EnergyUnitsPerKcal.
const CoulombConstant = 332.06371 * KcalToInternal

// KcalToEnergy and EnergyToKcal convert a single value, for call sites that
// read more naturally as a function than a constant multiply.
func KcalToEnergy(kcalPerMol float64) float64 { return kcalPerMol * KcalToInternal }
func EnergyToKcal(energy float64) float64     { return energy * InternalToKcal }

// DegToRad and RadToDeg convert a single angle value.
func DegToRad(deg float64) float64 { return deg * Deg2Rad }
func RadToDeg(rad float64) float64 { return rad * Rad2Deg }
