// Package http provides HTTP handlers and middleware for the day planner API.
//
// The router exposes the following endpoints:
//   - POST /sessions: issues a session token. Body: {"email","password"}. Response:
//     {"token","expires_at"} with the token also surfaced via the `X-Session-Token`
//     header and a `session_token` cookie.
//   - DELETE /sessions/current: revokes the current session token extracted from the
//     Authorization header or session cookie. Returns 204 No Content and clears the
//     cookie.
//   - GET /planner/days/{date}: materializes the named calendar day (YYYY-MM-DD) for
//     the authenticated principal, returning the ordered, override-merged occurrence
//     list plus that day's save records.
//   - PUT /planner/days/{date}/schedules/{id}: records a schedule edit and completion
//     state for one day. The body carries the edited definition, the save record and
//     a mode ("all" persists the definition, "cur" confines the edit to the day).
//     Responds with the refreshed day view.
//   - GET /planner/schedules: lists the principal's schedule definitions.
//   - DELETE /planner/schedules/{id}: removes a definition; historical save records
//     are kept.
//   - GET /cron/next?expr=&count=: projects the next firing times of a six-field
//     cron expression as formatted timestamp strings.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
