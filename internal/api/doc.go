// Package api serves dependency listings over HTTP.
//
// Routes:
//
//	GET /healthz
//	GET /deps?formula=a&formula=b[&union=true]
//	GET /formulae/{name}/deps
//	GET /formulae/{name}/tree?format=json|dot|svg|text
//	GET /formulae/{name}/upgrade-specs
//
// Formula routes accept ?tap=user/repo to address a formula outside the core
// tap. The dependency routes take the filter flags include_build,
// include_optional, skip_recommended and direct as booleans.
//
// Errors are returned as {"error": {"code", "message"}} with the status
// derived from the error code: FORMULA_UNAVAILABLE and NOT_FOUND map to 404,
// AMBIGUOUS_FORMULA to 409 (with the candidate names), INVALID_* to 400 and
// anything else to 500.
package api
