// Package forms hosts validated forms over HTTP.
//
// A Schema names a form, lays out its inputs and declares the validated
// fields. The Manager compiles each schema once at registration and opens
// any number of sessions per form; every session owns a live Document, a
// submit Button and a validation.Validator bound to both.
//
//	m := forms.NewManager(validation.DefaultRegistry(), logger, forms.WithMaxSessions(1000))
//	err := m.Register(forms.Schema{
//	    Name:   "signup",
//	    Inputs: []string{"email", "password", "confirm"},
//	    Fields: []validation.Field{
//	        {Name: "email", Rules: "required|email"},
//	        {Name: "password", Rules: "required|minLen:8", Sync: "confirm"},
//	        {Name: "confirm", Rules: "required|confirm:password"},
//	    },
//	})
//
//	s, _ := m.Open("signup")
//	state, _ := s.Event(validation.EventInput, "email", "ada@example")
//	state, ok := s.Submit(map[string]string{"email": "ada@example.com"})
//
// Schemas can also be read from YAML files with LoadSchemas or Manager.Load.
//
// Handler exposes sessions under /forms; see its documentation for the routes.
package forms
