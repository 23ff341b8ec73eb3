// Package editor contains the controllers behind the annotation forms.
//
// Each controller is created from the shared [session.State], the
// [form.Fields] it reads and writes, and the parts of the backend API it
// calls. Constructors check that every field a controller needs is present,
// so a front end that forgets one fails once, at startup.
//
// Controllers never block on user interaction. Front ends call them from
// their own event loop and render the results.
package editor
