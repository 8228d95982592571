// Package query holds the shared vocabulary of the query layer: status
// labels, the cancellation sentinel, layered configuration, call-shape
// normalization, and the logging sink.
//
// A query can be declared in three equivalent shapes:
//
//	query.NormalizeArgs("todos", fetchTodos, query.Config{StaleTime: query.Duration(time.Minute)})
//	query.NormalizeArgs(query.Options{QueryKey: "todos", QueryFn: fetchTodos, Config: &cfg})
//	query.NormalizeArgs("todos", query.Config{QueryFn: fetchTodos, StaleTime: query.Duration(time.Minute)})
//
// All three yield the same key and a config whose QueryFn is set. UseArgs
// additionally merges the defaults provided by the nearest ConfigContext.
package query
