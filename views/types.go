package views

// Page is one rendered pass over the image directory: a title followed by
// one block per image, in listing order.
type Page struct {
	Title  string
	Dir    string
	Blocks []Block
}

// Block is a single image with its caption.
type Block struct {
	Filename string
	Caption  string
	Src      string // image URL or data: URI
	Width    int
	Height   int
	Size     string // human-readable file size
}

// PassRow is one entry of the render-pass history shown on the admin page.
type PassRow struct {
	StartedAt string
	Ago       string
	Dir       string
	Blocks    int
	Duration  string
	Error     string
}
