package pushtokens

import "time"

const QueryTimeoutDuration = time.Second * 5
