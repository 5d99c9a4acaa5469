// Package jsonroutes provides a small routing layer for JSON APIs with error-returning handlers and
// deferred error middleware.
//
// # Overview
//
// A [Router] holds an ordered table of endpoints, pre-route middleware and error stages. Every response
// carries a set of default headers, and results are sent uniformly with [Router.SendResult]:
//
//	rt := jsonroutes.NewRouter()
//	rt.AddFunc("GET", "items/{id}", func(ctx context.Context, w jsonroutes.ResponseWriter, r *http.Request) error {
//	    item, err := db.GetItem(ctx, r.PathValue("id"))
//	    if err != nil {
//	        return jsonroutes.NewError(jsonroutes.CodeNotFound, err)
//	    }
//	    return rt.SendResult(w, jsonroutes.Result{Data: item})
//	})
//
// # Results
//
// A [Result] describes the status code, extra headers and JSON data of a response. A zero code means
// 200. Nil data sends no body at all, while [Null] sends the literal JSON null:
//
//	rt.SendResult(w, jsonroutes.Result{})                             // 200, empty body
//	rt.SendResult(w, jsonroutes.Result{Data: jsonroutes.Null})        // 200, "null"
//	rt.SendResult(w, jsonroutes.Result{Code: 201, Data: created})     // 201, JSON object
//
// JSON is compact unless the router was created in development mode, then it is indented.
//
// # Response Headers
//
// By default every response carries "Cache-Control: no-store" and "Pragma: no-cache". The set can be
// replaced as a whole with [Router.SetResponseHeaders]; it is not merged with the defaults.
//
// # Routes
//
// [Router.Add] and [Router.AddFunc] register endpoints by method and path. The path gets a leading slash
// when it is missing. Registering the same method and path twice keeps both: the handlers are tried in
// registration order and a handler can defer to the next one by returning [ErrNextRoute].
// [Router.Routes] lists all registered endpoints in order and [Router.RoutesHandler] serves that list.
//
// # Middleware
//
// Middleware registered with [Router.Use] runs before route matching for every request:
//
//	rt.Use(func(next jsonroutes.BareHandler) jsonroutes.BareHandler {
//	    return jsonroutes.BareHandlerFunc(func(w jsonroutes.ResponseWriter, r *http.Request) error {
//	        start := time.Now()
//	        err := next.ServeBareJSON(w, r)
//	        log.Printf("%s %s took %v", r.Method, r.URL.Path, time.Since(start))
//	        return err
//	    })
//	})
//
// # Error Stages
//
// A failing handler, one that returns an error or panics, has its error passed to the error stages.
// Error stages are registered through [Router.ErrorMiddleware] and only become active when
// [ErrorMiddleware.Install] is called. That call belongs at startup, after all routes and middleware have
// been registered, so error stages always run after everything else:
//
//	rt.ErrorMiddleware().Use(jsonroutes.ErrorHandlerFunc(func(err error, w jsonroutes.ResponseWriter, r *http.Request) error {
//	    return rt.SendResult(w, jsonroutes.Result{Code: 500, Data: map[string]string{"error": err.Error()}})
//	}))
//
//	rt.ErrorMiddleware().Install()
//
// Error stages run in registration order. A stage returning nil has handled the error, returning an
// error passes it to the next stage. [Router.ErrorResultHandler] provides a stage that answers with the
// status of an [*Error]. When no stage handles the error the router logs it and answers with a plain 500.
package jsonroutes
