package web

import "embed"

// FS contains the embedded static assets.
//
//go:embed static/*
var FS embed.FS
