package tui

const helpMarkdown = `
## Task list

- **↑/↓, j/k**: select a task
- **space, e**: toggle enabled
- **a**: toggle API trigger
- **enter**: edit the selected task
- **n**: add a task from a template
- **s, ctrl+s**: save the configuration to the server
- **r**: reload the configuration
- **,**: global settings

## Logs

- **tab**: switch between tasks and logs
- **c**: clear the log view

## Editor

- **tab, shift+tab**: move between fields
- **ctrl+s**: keep the changes (saved with **s**)
- **ctrl+t**: send a test request
- **ctrl+d**: duplicate, **ctrl+x**: delete
- **esc**: cancel

Press **q** or **ctrl+c** to quit.
`
