package main

import "ewaste_backend/internal/app"

func main() {
	app.Run()
}
