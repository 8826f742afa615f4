/*
Package config loads the ngmigrate tool configuration.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  JSON   |   |  YAML   |   |   HCL   |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Locates .ngmigrate.{yaml,yml,json,hcl} in the project
- Decodes it through the parser registry (see package parser)
- Fills defaults for file suffixes and job count
- Validates ignore globs up front

🔍 Example:

	cfg, err := config.LoadOrDefault(ctx, "", projectDir)
	if err != nil {
		return err
	}
	fmt.Println(cfg.TemplateSuffix) // component.html
*/
package config
