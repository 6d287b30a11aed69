// Package plan implements the scheduling engine: it resolves the horizon
// calendar and per-employee availability, computes fairness targets,
// assembles a mixed-integer model with hard staffing constraints and
// linearized soft penalties, invokes the solver and extracts the final
// assignment matrix with its summary statistics.
package plan
