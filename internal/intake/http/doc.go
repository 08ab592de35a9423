// Package http exposes the intake service over HTTP: the JSON page views
// behind the session gate, operator auth, the intake API and the welcome
// email endpoint.
package http

//go:generate swag init --generalInfo router.go --dir ./,../../../pkg/intakesdk --output ../../../api/intake --outputTypes go --packageName intake
