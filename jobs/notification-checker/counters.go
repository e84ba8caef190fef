package main

import "time"

type NotificationCounter struct {
	Success  int
	Failed   int
	Duration int64
	start    time.Time
}

func InitNotificationCounter() *NotificationCounter {
	return &NotificationCounter{
		Success: 0,
		Failed:  0,
		start:   time.Now(),
	}
}

func (c *NotificationCounter) IncreaseCounter(success bool) {
	if success {
		c.Success++
	} else {
		c.Failed++
	}
}

func (c *NotificationCounter) Stop() {
	c.Duration = time.Since(c.start).Milliseconds()
}
