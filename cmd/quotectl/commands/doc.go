// Package commands implements quotectl, the operator tool for the quote API.
//
//	quotectl send-test --url http://localhost:8080/api/send-email
//	quotectl preview notification --format text
package commands
