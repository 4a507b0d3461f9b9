// Package models defines the domain records the client reads from its two
// backends and keeps in memory: the auth User and its Session, the Director
// profile, vault Messages, and Categories.
package models
