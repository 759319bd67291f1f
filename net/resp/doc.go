// Package resp writes the API's JSON responses.
//
// Success responses carry the handler's payload as-is:
//
//	resp.Success(w, map[string]any{"post": post})
//	resp.WithStatusCode(w, http.StatusCreated, map[string]any{"message": "Post created successfully"})
//
// A bare string payload is wrapped as {"message": "..."}.
//
// Failure responses always carry an "error" message and the business code
// from the ecode package, plus per-field validation errors when present:
//
//	{
//	  "error": "Missing required fields",
//	  "code": -401,
//	  "errors": {"email": "email required"}
//	}
//
// Build failures from the predefined constructors or from a service error:
//
//	resp.Fail(w, resp.NotFound("Post not found"))
//	resp.Fail(w, resp.FromError(err))
package resp
