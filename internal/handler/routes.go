// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route patterns.
const (
	RouteAPI         = "/api/v1"
	RouteLangPrefix  = "/{lang}"
	RoutePages       = "/pages"
	RouteHome        = "/home"
	RouteServices    = "/services"
	RouteContainers  = "/containers"
	RouteAbout       = "/about"
	RoutePrivacy     = "/privacy"
	RouteContacts    = "/contacts"
	RouteNews        = "/news"
	RouteNewsID      = "/news/{id}"
	RoutePathsNews   = "/paths/news"
	RouteSubmit      = "/api/submit"
	RouteHealth      = "/health"
	RouteHealthLive  = "/health/live"
	RouteHealthReady = "/health/ready"
	RouteSitemap     = "/sitemap.xml"
	RouteRobots      = "/robots.txt"
	RouteHomeAPIPath = RouteAPI + RoutePages + RouteHome
)
