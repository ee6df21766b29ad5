// meta/meta.go
package meta

// BOARD_SIZE is the default side length of the board.
const BOARD_SIZE = 4

// MAX_TURNS caps the moves of a game before it is drawn.
const MAX_TURNS = 200

// MAX_WORKERS caps the number of games simulated concurrently.
const MAX_WORKERS = 8

// PIECES_PER_SIZE is the number of pieces of each size a side starts with.
const PIECES_PER_SIZE = 3

const LIGHT_FIRST_ID = 0

// DARK_FIRST_ID is the id of dark's first piece; light ids start at 0.
const DARK_FIRST_ID = 12

const DEFAULT_GAMES = 10

// DATA_FILE is where finished game records are stored.
const DATA_FILE = "data/games.json"
