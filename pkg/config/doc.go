/*
Package config manages configuration parsing and validation for hashdrop.

	            +-------------+
	            |   Config    |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Locates the config file (XDG config dir unless --config is given)
- Picks a parser by file extension
- Fills in defaults and validates the shortcut and log level

🔄 Flow:
1. Reads configuration from file (a missing default file means defaults)
2. Parses format-specific syntax, rejecting unknown fields
3. Resolves the settings path relative to the config file
4. Validates configuration values

📝 HCL files can refer to home, config_dir and downloads, and call env:

	api      = env("IPFS_API")
	shortcut = "CommandOrControl+Shift+H"
	settings = "${config_dir}/hashdrop/settings.yaml"
	ignore   = ["*.tmp"]

🔍 Example:

	cfg, err := config.Load(ctx, "")
	if err != nil {
		return err
	}
	fmt.Println(cfg)
*/
package config
