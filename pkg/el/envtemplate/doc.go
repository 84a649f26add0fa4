/*
Package envtemplate expands ${var} and $var references in configuration
file paths and values against a variable map, typically os.Environ(). It
is distinct from the EL expression-language grammar: envtemplate resolves
before a config file is handed to el.Compile, it does not parse "${...}"
call chains.

# Basic Usage

Expand variables using the package-level function:

	result := envtemplate.Expand("Hello ${name}", map[string]any{"name": "World"})
	// result: "Hello World"

Both brace and dollar-sign patterns are supported:

	vars := map[string]any{"host": "api.example.com", "port": 8080}
	url := envtemplate.Expand("https://${host}:$port/api", vars)
	// url: "https://api.example.com:8080/api"

# Variable Patterns

Two patterns are supported:

  - ${var} - Brace style, recommended for clarity
  - $var - Dollar style, simpler but requires word boundaries

The dollar style uses word boundary detection to avoid partial matches.
For example, $port won't match inside $portNumber.

# Missing Variables

By default, missing variables are kept as-is:

	result := envtemplate.Expand("Hello ${missing}", nil)
	// result: "Hello ${missing}"

Configure behavior with options:

	exp := envtemplate.NewExpander(envtemplate.WithMissingAction(envtemplate.MissingEmpty))
	result, _ := exp.Expand("Hello ${missing}", nil)
	// result: "Hello "

	exp = envtemplate.NewExpander(envtemplate.WithMissingAction(envtemplate.MissingError))
	_, err := exp.Expand("Hello ${missing}", nil)
	// err: "undefined variable: missing"

# Batch Expansion

Expand multiple strings or maps efficiently:

	vars := map[string]any{"env": "prod"}

	// Expand slice of strings
	urls := envtemplate.ExpandAll([]string{
	    "https://${env}.api.com",
	    "https://${env}.db.com",
	}, vars)

	// Expand all string values in a map recursively
	config := envtemplate.ExpandMap(map[string]any{
	    "url": "https://${env}.api.com",
	    "nested": map[string]any{
	        "endpoint": "/api/${env}/v1",
	    },
	}, vars)

# Custom Expander

Create a custom expander for advanced scenarios:

	exp := envtemplate.NewExpander(
	    envtemplate.WithMissingAction(envtemplate.MissingError),
	    envtemplate.WithBraceStyle(true),
	    envtemplate.WithDollarStyle(false), // Disable $var pattern
	)

	result, err := exp.Expand("${greeting} ${name}", map[string]any{
	    "greeting": "Hello",
	    "name": "World",
	})

# Thread Safety

Expander is safe for concurrent use after construction.
Package-level functions use a shared default expander.
*/
package envtemplate
