//go:build !windows

package service

func reportToEventLog(error) {}
