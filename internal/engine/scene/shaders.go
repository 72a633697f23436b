package scene

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
	gl_Position = uMVP * vec4(aPosition, 1.0);
	vNormal = mat3(uModel) * aNormal;
}
`

const meshFragmentShader = `
#version 410 core

uniform vec3 uColor;
uniform vec3 uLightDir;
uniform vec3 uAmbient;

in vec3 vNormal;
out vec4 FragColor;

void main() {
	float diffuse = max(dot(normalize(vNormal), uLightDir), 0.0);
	FragColor = vec4(uColor * (uAmbient + diffuse), 1.0);
}
`
