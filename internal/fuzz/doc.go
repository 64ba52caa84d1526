// Package fuzztests houses Go fuzz harnesses for the analysis pipeline
// (source -> lexer -> parser -> rules). They look for panics, hangs and
// broken stream or tree invariants on arbitrary module text.
//
// Назначение: гонять произвольные байты через FileSet, лексер, парсер и
// движок правил.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
