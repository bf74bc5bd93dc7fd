package models

import "time"

// Now is the clock used everywhere election status is derived. Tests swap
// it out to pin the current time.
var Now = time.Now
