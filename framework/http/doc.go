// Package http provides request and response helpers for the form endpoints.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	// Bind a JSON or form body into a struct (json tags in both cases)
//	var e struct {
//	    Type  string `json:"type"`
//	    Field string `json:"field"`
//	    Value string `json:"value"`
//	}
//	if err := req.Bind(&e); err != nil { ... }
//
//	// Flat field → value map from JSON, urlencoded or multipart bodies
//	values, err := req.Values()
//
//	form := req.RouteParam("form") // chi URL parameter
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.Success(state)              // 200 {"data": ...}
//	res.Created(state)              // 201 {"data": ...}
//	res.NoContent()                 // 204
//	res.Error(400, "bad input")     // {"message": "bad input"}
//	res.NotFound()                  // 404 {"message": "Not found."}
//	res.ValidationError(vis, all)   // 422 {"errors": {"field": "msg"}, "details": {...}}
//
// # ViewEngine
//
//	engine := gohttp.NewViewEngine(templatesFS, ".html")
//	err := engine.View(w, "page", data)
package http
