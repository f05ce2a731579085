package metaclient

// PageState é o estado da paginação por cursor: ou há próxima página (com o
// cursor a enviar, vazio na primeira) ou terminou.
type PageState struct {
	cursor string
	done   bool
	pages  int
}

func StartPaging() PageState {
	return PageState{}
}

func (s PageState) HasNext() bool {
	return !s.done
}

func (s PageState) Cursor() string {
	return s.cursor
}

// Pages é o número de páginas já consumidas
func (s PageState) Pages() int {
	return s.pages
}

// Advance é a transição após consumir uma página cujo paging.cursors.after é
// after. Só a ausência do cursor encerra; o tamanho da página é irrelevante.
// Um cursor repetido também encerra para não ficar em loop.
func (s PageState) Advance(after string) PageState {
	next := PageState{pages: s.pages + 1}
	if after == "" || (s.pages > 0 && after == s.cursor) {
		next.done = true
		return next
	}
	next.cursor = after
	return next
}
