// Package storage provides a thin JSON document layer over BadgerDB.
// Keys follow a prefix scheme: pantry:<chatID>, cook:<chatID>:<ts>,
// suggestion:<chatID>, stats:<chatID>.
package storage
