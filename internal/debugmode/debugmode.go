// Package debugmode exposes a single process-wide switch that gates
// assertions too expensive to run on every call. Currently that is
// gkr.Circuit.Evaluate's wiring/trace consistency check, which brute-force
// recomputes every layer from its add_l/mul_l wiring predicate MLEs and
// cross-checks the result against the trace Evaluate produced directly —
// catching a mismatch between the gate-wiring addressing Evaluate uses and
// the a||b||c bit-packing convention WiringMLEs uses, at the cost of an
// extra O(width_l * width_below^2) pass per layer. logger also consults
// Enabled, to decide whether to auto-mute logging under go test. Off by
// default; set GNARK_GKR_DEBUG=1 to turn it on.
package debugmode

import "os"

// Enabled reports whether extra runtime assertions should run.
var Enabled = os.Getenv("GNARK_GKR_DEBUG") == "1"
