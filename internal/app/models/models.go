// Package models holds the persisted entities of the student records store.
package models
