package main

import "jobtrack_backend/internal/app"

func main() {
	app.Run()
}
