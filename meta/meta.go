// meta/meta.go
package meta

// DEFAULT_SIZE is the board size used when none is given.
const DEFAULT_SIZE = 3

// MAX_UNBOUNDED_SIZE is the largest board a "hard" game searches without a depth limit.
const MAX_UNBOUNDED_SIZE = 3

// LIMITED_DEPTH is the horizon for "easy" games and for "hard" games on larger boards.
const LIMITED_DEPTH = 1

// ALGORITHM_SIZE is the board size of algorithm-vs-algorithm games.
const ALGORITHM_SIZE = 3

// DEFAULT_ADDR is where the analysis server listens.
const DEFAULT_ADDR = "127.0.0.1:3000"

// MAX_API_SIZE is the largest board the analysis server accepts.
const MAX_API_SIZE = 7

// MAX_API_DEPTH caps the plies searched by the analysis server on boards above MAX_UNBOUNDED_SIZE.
const MAX_API_DEPTH = 3

// MAX_BODY_BYTES limits the size of a request body sent to the analysis server.
const MAX_BODY_BYTES = 16 << 10
