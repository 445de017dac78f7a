package main

import "github.com/adanyl0v/go-todo-json/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustOpenStore()
	defer app.CloseStore()

	app.MustListenAndServeHTTP()
}
